package domain

import "time"

// DocumentStatus is the lifecycle state of an uploaded document.
type DocumentStatus string

const (
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// Terminal reports whether no further status changes can occur.
func (s DocumentStatus) Terminal() bool {
	return s == DocumentCompleted || s == DocumentFailed
}

// Stage is one named step of the fixed document-processing pipeline.
// At most one stage is Current at a time; Completed never reverts.
type Stage struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Completed   bool   `json:"completed"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// DefaultStages returns the pipeline in processing order. Key matches the
// stage_name the backend reports in status polls.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "Preprocessing", Key: "preprocessing", Description: "Document preprocessing and layout analysis"},
		{Name: "OCR Extraction", Key: "ocr_extraction", Description: "Intelligent OCR field extraction"},
		{Name: "LLM Processing", Key: "llm_processing", Description: "Structured data extraction"},
		{Name: "Validation", Key: "validation", Description: "Quality scoring and validation"},
		{Name: "Routing", Key: "routing", Description: "Routing based on quality scores"},
	}
}

// Document tracks one uploaded document through the pipeline.
type Document struct {
	ID              string         `json:"id"`
	Filename        string         `json:"filename"`
	Status          DocumentStatus `json:"status"`
	UploadTime      time.Time      `json:"upload_time"`
	Progress        int            `json:"progress"`
	Stages          []Stage        `json:"stages"`
	QualityScore    float64        `json:"quality_score,omitempty"`
	ProcessingTime  time.Duration  `json:"processing_time,omitempty"`
	RoutingDecision string         `json:"routing_decision,omitempty"`
}

// NewDocument builds the initial in-flight record for an accepted upload.
func NewDocument(id, filename string, uploadedAt time.Time) Document {
	return Document{
		ID:         id,
		Filename:   filename,
		Status:     DocumentProcessing,
		UploadTime: uploadedAt,
		Stages:     DefaultStages(),
	}
}

// StageReport is the backend's view of one pipeline stage in a status poll.
type StageReport struct {
	Name   string `json:"stage_name"`
	Status string `json:"status"`
}

// StatusReport is a single polled snapshot of backend processing state.
type StatusReport struct {
	DocumentID string         `json:"document_id"`
	Status     DocumentStatus `json:"status"`
	Progress   int            `json:"progress"`
	Stages     []StageReport  `json:"stages"`
}

// ExtractionResult is the normalized form of a completed document's results,
// folded from the backend's heterogeneous response shapes.
type ExtractionResult struct {
	DocumentID       string
	ExtractedData    map[string]any
	ConfidenceScores map[string]float64
	QualityScore     float64
	RoutingDecision  string
	ProcessingStages []string
	ProcessingTime   time.Duration
	// IsMockData warns that the backend returned placeholder results; the
	// displayed data may not reflect the real document.
	IsMockData bool
}

// AnalyticsReport summarizes backend document-processing activity.
type AnalyticsReport struct {
	TotalDocuments  int       `json:"total_documents"`
	ProcessedToday  int       `json:"processed_today"`
	AverageQuality  float64   `json:"average_quality"`
	AutoApproved    float64   `json:"auto_approved"`
	SuccessRate     float64   `json:"success_rate"`
	DailyProcessing []int     `json:"daily_processing"`
	QualityTrends   []float64 `json:"quality_trends"`
	Summary         string    `json:"summary"`
}
