package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/wareops/opsctl/internal/domain"
)

// ForecastingClient reads demand-forecasting state from the backend. All
// calls use the shorter forecasting timeout tier: dashboards refresh often
// and a slow backend should fail fast rather than hang the console.
type ForecastingClient struct {
	*Client
}

func NewForecastingClient(client *Client) *ForecastingClient {
	return &ForecastingClient{Client: client}
}

func (f *ForecastingClient) Dashboard(ctx context.Context) (json.RawMessage, error) {
	var dashboard json.RawMessage
	err := f.get(ctx, "/forecasting/dashboard", &dashboard, f.settings.ForecastTimeout())
	return dashboard, err
}

// ReorderRecommendations unwraps the backend's {recommendations: [...]}
// envelope.
func (f *ForecastingClient) ReorderRecommendations(ctx context.Context) ([]domain.ReorderRecommendation, error) {
	var payload struct {
		Recommendations []domain.ReorderRecommendation `json:"recommendations"`
	}
	if err := f.get(ctx, "/forecasting/reorder-recommendations", &payload, f.settings.ForecastTimeout()); err != nil {
		return nil, err
	}
	return payload.Recommendations, nil
}

// ModelPerformance unwraps the backend's {model_metrics: [...]} envelope.
func (f *ForecastingClient) ModelPerformance(ctx context.Context) ([]domain.ModelPerformance, error) {
	var payload struct {
		ModelMetrics []domain.ModelPerformance `json:"model_metrics"`
	}
	if err := f.get(ctx, "/forecasting/model-performance", &payload, f.settings.ForecastTimeout()); err != nil {
		return nil, err
	}
	return payload.ModelMetrics, nil
}

func (f *ForecastingClient) RealTime(ctx context.Context) (json.RawMessage, error) {
	var metrics json.RawMessage
	err := f.get(ctx, "/forecasting/real-time", &metrics, f.settings.ForecastTimeout())
	return metrics, err
}

func (f *ForecastingClient) BusinessIntelligence(ctx context.Context) (json.RawMessage, error) {
	var report json.RawMessage
	err := f.get(ctx, "/forecasting/business-intelligence", &report, f.settings.ForecastTimeout())
	return report, err
}

func (f *ForecastingClient) Forecast(ctx context.Context, sku string, horizonDays int) (domain.Forecast, error) {
	var forecast domain.Forecast
	path := "/forecasting/forecast/" + url.PathEscape(sku)
	query := url.Values{"horizon_days": {strconv.Itoa(horizonDays)}}
	err := f.do(ctx, request{method: "GET", path: path, query: query}, &forecast, f.settings.ForecastTimeout())
	return forecast, err
}

func (f *ForecastingClient) Health(ctx context.Context) (json.RawMessage, error) {
	var health json.RawMessage
	err := f.get(ctx, "/forecasting/health", &health, f.settings.MetadataTimeout())
	return health, err
}
