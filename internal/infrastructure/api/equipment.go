package api

import (
	"context"
	"net/url"

	"github.com/wareops/opsctl/internal/domain"
)

// EquipmentClient manages warehouse assets through the backend.
type EquipmentClient struct {
	*Client
}

func NewEquipmentClient(client *Client) *EquipmentClient {
	return &EquipmentClient{Client: client}
}

func (e *EquipmentClient) List(ctx context.Context) ([]domain.Asset, error) {
	var payload struct {
		Equipment []domain.Asset `json:"equipment"`
	}
	if err := e.get(ctx, "/equipment", &payload, e.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Equipment, nil
}

func (e *EquipmentClient) Get(ctx context.Context, assetID string) (domain.Asset, error) {
	var asset domain.Asset
	err := e.get(ctx, "/equipment/"+url.PathEscape(assetID), &asset, e.settings.Timeout())
	return asset, err
}

func (e *EquipmentClient) Status(ctx context.Context, assetID string) (domain.Asset, error) {
	var asset domain.Asset
	err := e.get(ctx, "/equipment/"+url.PathEscape(assetID)+"/status", &asset, e.settings.MetadataTimeout())
	return asset, err
}

func (e *EquipmentClient) Assign(ctx context.Context, req domain.AssignmentRequest) (domain.Assignment, error) {
	var assignment domain.Assignment
	err := e.post(ctx, "/equipment/assign", req, &assignment, e.settings.Timeout())
	return assignment, err
}

func (e *EquipmentClient) Release(ctx context.Context, req domain.ReleaseRequest) error {
	return e.post(ctx, "/equipment/release", req, nil, e.settings.Timeout())
}

func (e *EquipmentClient) Assignments(ctx context.Context) ([]domain.Assignment, error) {
	var payload struct {
		Assignments []domain.Assignment `json:"assignments"`
	}
	if err := e.get(ctx, "/equipment/assignments", &payload, e.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Assignments, nil
}

func (e *EquipmentClient) Telemetry(ctx context.Context, assetID string) ([]domain.TelemetryPoint, error) {
	var payload struct {
		Telemetry []domain.TelemetryPoint `json:"telemetry"`
	}
	if err := e.get(ctx, "/equipment/"+url.PathEscape(assetID)+"/telemetry", &payload, e.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Telemetry, nil
}

func (e *EquipmentClient) ScheduleMaintenance(ctx context.Context, req domain.MaintenanceRequest) error {
	return e.post(ctx, "/equipment/maintenance/schedule", req, nil, e.settings.Timeout())
}

func (e *EquipmentClient) MaintenanceWindows(ctx context.Context) ([]domain.MaintenanceWindow, error) {
	var payload struct {
		Maintenance []domain.MaintenanceWindow `json:"maintenance"`
	}
	if err := e.get(ctx, "/equipment/maintenance", &payload, e.settings.Timeout()); err != nil {
		return nil, err
	}
	return payload.Maintenance, nil
}
