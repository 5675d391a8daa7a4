package domain

import "time"

// Asset is a tracked piece of warehouse equipment.
type Asset struct {
	AssetID         string         `json:"asset_id"`
	Type            string         `json:"type"`
	Model           string         `json:"model,omitempty"`
	Zone            string         `json:"zone,omitempty"`
	Status          string         `json:"status"`
	OwnerUser       string         `json:"owner_user,omitempty"`
	NextPMDue       string         `json:"next_pm_due,omitempty"`
	LastMaintenance string         `json:"last_maintenance,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// AssignmentRequest hands an asset to a worker or task.
type AssignmentRequest struct {
	AssetID        string  `json:"asset_id"`
	Assignee       string  `json:"assignee"`
	AssignmentType string  `json:"assignment_type,omitempty"`
	TaskID         string  `json:"task_id,omitempty"`
	DurationHours  float64 `json:"duration_hours,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// ReleaseRequest returns an assigned asset to the pool.
type ReleaseRequest struct {
	AssetID    string `json:"asset_id"`
	ReleasedBy string `json:"released_by"`
	Notes      string `json:"notes,omitempty"`
}

// Assignment is an active or historical asset assignment.
type Assignment struct {
	AssetID    string     `json:"asset_id"`
	Assignee   string     `json:"assignee"`
	TaskID     string     `json:"task_id,omitempty"`
	AssignedAt time.Time  `json:"assigned_at"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	Active     bool       `json:"active"`
}

// TelemetryPoint is one sampled equipment metric.
type TelemetryPoint struct {
	AssetID   string    `json:"asset_id"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// MaintenanceRequest schedules maintenance for an asset.
type MaintenanceRequest struct {
	AssetID                  string `json:"asset_id"`
	MaintenanceType          string `json:"maintenance_type"`
	Description              string `json:"description"`
	ScheduledBy              string `json:"scheduled_by"`
	ScheduledFor             string `json:"scheduled_for"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes,omitempty"`
	Priority                 string `json:"priority,omitempty"`
}

// MaintenanceWindow is a scheduled maintenance slot.
type MaintenanceWindow struct {
	AssetID         string `json:"asset_id"`
	MaintenanceType string `json:"maintenance_type"`
	Description     string `json:"description"`
	ScheduledFor    string `json:"scheduled_for"`
	Priority        string `json:"priority,omitempty"`
	Status          string `json:"status,omitempty"`
}
