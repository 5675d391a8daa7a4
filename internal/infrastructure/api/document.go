package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// DocumentClient talks to the document-processing surface of the backend.
type DocumentClient struct {
	*Client
}

var _ ports.DocumentService = (*DocumentClient)(nil)

func NewDocumentClient(client *Client) *DocumentClient {
	return &DocumentClient{Client: client}
}

// Upload sends the file as multipart form data and returns the assigned
// document id.
func (d *DocumentClient) Upload(ctx context.Context, path, documentType, userID string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &domain.APIError{Type: domain.ErrorValidation, Endpoint: "/document/upload", Message: err.Error(), Err: err}
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.WriteField("document_type", documentType); err != nil {
		return "", err
	}
	if err := writer.WriteField("user_id", userID); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	var payload struct {
		DocumentID string `json:"document_id"`
	}
	req := request{
		method:  http.MethodPost,
		path:    "/document/upload",
		rawBody: &buf,
		header:  http.Header{"Content-Type": {writer.FormDataContentType()}},
	}
	if err := d.do(ctx, req, &payload, d.settings.Timeout()); err != nil {
		return "", err
	}
	return payload.DocumentID, nil
}

func (d *DocumentClient) Status(ctx context.Context, documentID string) (domain.StatusReport, error) {
	var report domain.StatusReport
	err := d.get(ctx, "/document/status/"+url.PathEscape(documentID), &report, d.settings.MetadataTimeout())
	return report, err
}

// Results fetches and normalizes a completed document's extraction results.
func (d *DocumentClient) Results(ctx context.Context, documentID string) (domain.ExtractionResult, error) {
	var raw rawResults
	if err := d.get(ctx, "/document/results/"+url.PathEscape(documentID), &raw, d.settings.Timeout()); err != nil {
		return domain.ExtractionResult{}, err
	}
	return normalizeResults(documentID, raw), nil
}

func (d *DocumentClient) Analytics(ctx context.Context) (domain.AnalyticsReport, error) {
	var report domain.AnalyticsReport
	err := d.get(ctx, "/document/analytics", &report, d.settings.Timeout())
	return report, err
}

// Search runs a free-text query over processed documents and returns the
// backend's result payload as-is.
func (d *DocumentClient) Search(ctx context.Context, query string) (json.RawMessage, error) {
	body := map[string]any{"query": query, "filters": map[string]any{}}
	var result json.RawMessage
	err := d.post(ctx, "/document/search", body, &result, d.settings.Timeout())
	return result, err
}

func (d *DocumentClient) Approve(ctx context.Context, documentID, approverID, notes string) error {
	body := map[string]any{"approver_id": approverID, "approval_notes": notes}
	return d.post(ctx, "/document/approve/"+url.PathEscape(documentID), body, nil, d.settings.Timeout())
}

func (d *DocumentClient) Reject(ctx context.Context, documentID, rejectorID, reason string, suggestions []string) error {
	if suggestions == nil {
		suggestions = []string{}
	}
	body := map[string]any{"rejector_id": rejectorID, "rejection_reason": reason, "suggestions": suggestions}
	return d.post(ctx, "/document/reject/"+url.PathEscape(documentID), body, nil, d.settings.Timeout())
}

// rawResults mirrors the backend's results payload loosely enough to accept
// every shape it has been seen to produce.
type rawResults struct {
	DocumentID        string             `json:"document_id"`
	ExtractedData     json.RawMessage    `json:"extracted_data"`
	ConfidenceScores  map[string]float64 `json:"confidence_scores"`
	QualityScore      json.RawMessage    `json:"quality_score"`
	RoutingDecision   json.RawMessage    `json:"routing_decision"`
	ProcessingTimeMS  float64            `json:"processing_time_ms"`
	ProcessingStages  []rawStage         `json:"processing_stages"`
	ProcessingSummary struct {
		IsMockData bool `json:"is_mock_data"`
	} `json:"processing_summary"`
	IsMockData bool `json:"is_mock_data"`
}

type rawStage struct {
	StageName         string          `json:"stage_name"`
	Status            string          `json:"status"`
	ExtractionResults json.RawMessage `json:"extraction_results"`
	ProcessedData     json.RawMessage `json:"processed_data"`
	RawData           json.RawMessage `json:"raw_data"`
}

// normalizeResults folds the three observed extracted-data shapes and the
// quality/routing fallback chains into one ExtractionResult.
func normalizeResults(documentID string, raw rawResults) domain.ExtractionResult {
	result := domain.ExtractionResult{
		DocumentID:       documentID,
		ExtractedData:    map[string]any{},
		ConfidenceScores: map[string]float64{},
		ProcessingTime:   time.Duration(raw.ProcessingTimeMS) * time.Millisecond,
		IsMockData:       raw.IsMockData || raw.ProcessingSummary.IsMockData,
	}
	if raw.DocumentID != "" {
		result.DocumentID = raw.DocumentID
	}
	for field, score := range raw.ConfidenceScores {
		result.ConfidenceScores[field] = score
	}
	for _, stage := range raw.ProcessingStages {
		result.ProcessingStages = append(result.ProcessingStages, stage.StageName)
	}

	data, confidences := decodeExtractedData(raw.ExtractedData)
	if len(data) == 0 {
		data, confidences = stageExtractionData(raw.ProcessingStages)
	}
	for field, value := range data {
		result.ExtractedData[field] = value
	}
	for field, score := range confidences {
		if _, present := result.ConfidenceScores[field]; !present {
			result.ConfidenceScores[field] = score
		}
	}

	result.QualityScore = decodeQualityScore(raw.QualityScore, raw.ProcessingStages)
	result.RoutingDecision = decodeRoutingDecision(raw.RoutingDecision, raw.ProcessingStages)
	return result
}

// decodeExtractedData handles both map shapes: plain values, and per-field
// {value, confidence} wrappers.
func decodeExtractedData(raw json.RawMessage) (map[string]any, map[string]float64) {
	if len(raw) == 0 {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil
	}

	data := make(map[string]any, len(fields))
	confidences := map[string]float64{}
	for name, encoded := range fields {
		var wrapped struct {
			Value      json.RawMessage `json:"value"`
			Confidence *float64        `json:"confidence"`
		}
		if err := json.Unmarshal(encoded, &wrapped); err == nil && wrapped.Value != nil {
			var value any
			if json.Unmarshal(wrapped.Value, &value) == nil {
				data[name] = value
				if wrapped.Confidence != nil {
					confidences[name] = *wrapped.Confidence
				}
				continue
			}
		}
		var value any
		if json.Unmarshal(encoded, &value) == nil {
			data[name] = value
		}
	}
	return data, confidences
}

// stageExtractionData falls back to the first stage carrying extraction
// results when the top-level extracted_data field is absent.
func stageExtractionData(stages []rawStage) (map[string]any, map[string]float64) {
	for _, stage := range stages {
		if len(stage.ExtractionResults) == 0 {
			continue
		}
		data, confidences := decodeExtractedData(stage.ExtractionResults)
		if len(data) > 0 {
			return data, confidences
		}
	}
	return nil, nil
}

// decodeQualityScore accepts a bare number, an object carrying
// overall_score/quality_score, or falls back to the validation stage.
func decodeQualityScore(raw json.RawMessage, stages []rawStage) float64 {
	if score, ok := scoreFrom(raw); ok {
		return score
	}
	for _, stage := range stages {
		if stage.StageName != "validation" {
			continue
		}
		if score, ok := scoreFrom(stage.ProcessedData); ok {
			return score
		}
	}
	return 0
}

func scoreFrom(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err == nil {
		return score, true
	}
	var nested struct {
		OverallScore *float64 `json:"overall_score"`
		QualityScore *float64 `json:"quality_score"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.OverallScore != nil {
			return *nested.OverallScore, true
		}
		if nested.QualityScore != nil {
			return *nested.QualityScore, true
		}
	}
	return 0, false
}

// decodeRoutingDecision accepts a bare string, an object carrying
// routing_action, or falls back to the routing stage payloads.
func decodeRoutingDecision(raw json.RawMessage, stages []rawStage) string {
	if decision, ok := decisionFrom(raw); ok {
		return decision
	}
	for _, stage := range stages {
		if stage.StageName != "routing" {
			continue
		}
		if decision, ok := decisionFrom(stage.ProcessedData); ok {
			return decision
		}
		if decision, ok := decisionFrom(stage.RawData); ok {
			return decision
		}
	}
	return ""
}

func decisionFrom(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var decision string
	if err := json.Unmarshal(raw, &decision); err == nil && decision != "" {
		return decision, true
	}
	var nested struct {
		RoutingAction   string `json:"routing_action"`
		RoutingDecision string `json:"routing_decision"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.RoutingAction != "" {
			return nested.RoutingAction, true
		}
		if nested.RoutingDecision != "" {
			return nested.RoutingDecision, true
		}
	}
	return "", false
}
