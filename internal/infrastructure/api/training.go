package api

import (
	"context"

	"github.com/wareops/opsctl/internal/domain"
)

// TrainingClient controls forecasting model-training jobs.
type TrainingClient struct {
	*Client
}

func NewTrainingClient(client *Client) *TrainingClient {
	return &TrainingClient{Client: client}
}

func (t *TrainingClient) Start(ctx context.Context, modelName, triggeredBy string) (domain.TrainingRun, error) {
	body := map[string]any{"model_name": modelName, "triggered_by": triggeredBy}
	var run domain.TrainingRun
	err := t.post(ctx, "/forecasting/training/start", body, &run, t.settings.ForecastTimeout())
	return run, err
}

func (t *TrainingClient) Stop(ctx context.Context, runID string) error {
	body := map[string]any{"run_id": runID}
	return t.post(ctx, "/forecasting/training/stop", body, nil, t.settings.ForecastTimeout())
}

func (t *TrainingClient) Schedule(ctx context.Context) (domain.TrainingSchedule, error) {
	var schedule domain.TrainingSchedule
	err := t.get(ctx, "/forecasting/training/schedule", &schedule, t.settings.ForecastTimeout())
	return schedule, err
}

func (t *TrainingClient) SetSchedule(ctx context.Context, schedule domain.TrainingSchedule) error {
	return t.post(ctx, "/forecasting/training/schedule", schedule, nil, t.settings.ForecastTimeout())
}

func (t *TrainingClient) History(ctx context.Context) ([]domain.TrainingRun, error) {
	var payload struct {
		Runs []domain.TrainingRun `json:"runs"`
	}
	if err := t.get(ctx, "/forecasting/training/history", &payload, t.settings.ForecastTimeout()); err != nil {
		return nil, err
	}
	return payload.Runs, nil
}
