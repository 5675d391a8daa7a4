package api

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) rawResults {
	t.Helper()
	var raw rawResults
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeFlatExtractedData(t *testing.T) {
	raw := decodeRaw(t, `{
		"document_id": "doc-1",
		"extracted_data": {"invoice_number": "INV-9", "total": 125.5},
		"confidence_scores": {"invoice_number": 0.97},
		"quality_score": 0.91,
		"routing_decision": "auto_approve"
	}`)

	result := normalizeResults("doc-1", raw)
	assert.Equal(t, "doc-1", result.DocumentID)
	assert.Equal(t, "INV-9", result.ExtractedData["invoice_number"])
	assert.Equal(t, 125.5, result.ExtractedData["total"])
	assert.Equal(t, 0.97, result.ConfidenceScores["invoice_number"])
	assert.Equal(t, 0.91, result.QualityScore)
	assert.Equal(t, "auto_approve", result.RoutingDecision)
	assert.False(t, result.IsMockData)
}

func TestNormalizeValueConfidenceWrappers(t *testing.T) {
	raw := decodeRaw(t, `{
		"extracted_data": {
			"vendor": {"value": "Acme Corp", "confidence": 0.88},
			"amount": {"value": 42, "confidence": 0.75}
		}
	}`)

	result := normalizeResults("doc-2", raw)
	assert.Equal(t, "Acme Corp", result.ExtractedData["vendor"])
	assert.Equal(t, float64(42), result.ExtractedData["amount"])
	assert.Equal(t, 0.88, result.ConfidenceScores["vendor"])
	assert.Equal(t, 0.75, result.ConfidenceScores["amount"])
}

func TestNormalizeStageExtractionFallback(t *testing.T) {
	raw := decodeRaw(t, `{
		"processing_stages": [
			{"stage_name": "preprocessing", "status": "completed"},
			{"stage_name": "ocr_extraction", "status": "completed",
			 "extraction_results": {"po_number": {"value": "PO-7", "confidence": 0.8}}},
			{"stage_name": "llm_processing", "status": "completed",
			 "extraction_results": {"ignored": "later stage loses"}}
		]
	}`)

	result := normalizeResults("doc-3", raw)
	// First stage carrying extraction results wins.
	assert.Equal(t, "PO-7", result.ExtractedData["po_number"])
	assert.NotContains(t, result.ExtractedData, "ignored")
	assert.Equal(t, []string{"preprocessing", "ocr_extraction", "llm_processing"}, result.ProcessingStages)
}

func TestNormalizeQualityScoreFallbacks(t *testing.T) {
	// Structured top-level object.
	raw := decodeRaw(t, `{"quality_score": {"overall_score": 0.83}}`)
	assert.Equal(t, 0.83, normalizeResults("d", raw).QualityScore)

	// Validation-stage fallback.
	raw = decodeRaw(t, `{
		"processing_stages": [
			{"stage_name": "validation", "status": "completed",
			 "processed_data": {"quality_score": 0.66}}
		]
	}`)
	assert.Equal(t, 0.66, normalizeResults("d", raw).QualityScore)

	// Nothing anywhere: zero, not an error.
	raw = decodeRaw(t, `{}`)
	assert.Equal(t, 0.0, normalizeResults("d", raw).QualityScore)
}

func TestNormalizeRoutingDecisionFallbacks(t *testing.T) {
	raw := decodeRaw(t, `{"routing_decision": {"routing_action": "manual_review"}}`)
	assert.Equal(t, "manual_review", normalizeResults("d", raw).RoutingDecision)

	raw = decodeRaw(t, `{
		"processing_stages": [
			{"stage_name": "routing", "status": "completed",
			 "raw_data": {"routing_decision": "escalate"}}
		]
	}`)
	assert.Equal(t, "escalate", normalizeResults("d", raw).RoutingDecision)
}

func TestNormalizeMockDataFlag(t *testing.T) {
	raw := decodeRaw(t, `{"processing_summary": {"is_mock_data": true}}`)
	assert.True(t, normalizeResults("d", raw).IsMockData)

	raw = decodeRaw(t, `{"is_mock_data": true}`)
	assert.True(t, normalizeResults("d", raw).IsMockData)
}

func TestUploadSendsMultipartFields(t *testing.T) {
	var (
		gotType string
		gotUser string
		gotFile string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_ = params

		gotType = r.FormValue("document_type")
		gotUser = r.FormValue("user_id")
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFile = header.Filename
		io.Copy(io.Discard, file)

		w.Write([]byte(`{"document_id":"doc-42"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	client, _ := newTestClient(server.URL)
	docs := NewDocumentClient(client)

	documentID, err := docs.Upload(context.Background(), path, "invoice", "ops")
	require.NoError(t, err)
	assert.Equal(t, "doc-42", documentID)
	assert.Equal(t, "invoice", gotType)
	assert.Equal(t, "ops", gotUser)
	assert.Equal(t, "invoice.pdf", gotFile)
}

func TestStatusDecodesStageReports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/status/doc-5", r.URL.Path)
		w.Write([]byte(`{
			"document_id": "doc-5",
			"status": "processing",
			"progress": 40,
			"stages": [
				{"stage_name": "preprocessing", "status": "completed"},
				{"stage_name": "ocr_extraction", "status": "processing"}
			]
		}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	docs := NewDocumentClient(client)

	report, err := docs.Status(context.Background(), "doc-5")
	require.NoError(t, err)
	assert.Equal(t, 40, report.Progress)
	require.Len(t, report.Stages, 2)
	assert.Equal(t, "ocr_extraction", report.Stages[1].Name)
	assert.Equal(t, "processing", report.Stages[1].Status)
}
