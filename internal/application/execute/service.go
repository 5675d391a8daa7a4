package execute

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// Service runs tools against the backend and records every attempt, success
// or failure, in the execution history.
type Service struct {
	tools     ports.ToolService
	history   ports.HistoryRepository
	validator ports.ParameterValidator
	logger    ports.Logger

	now func() time.Time
}

func NewService(tools ports.ToolService, history ports.HistoryRepository, validator ports.ParameterValidator, logger ports.Logger) *Service {
	return &Service{
		tools:     tools,
		history:   history,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// Outcome is the recorded result of one execution.
type Outcome struct {
	Entry  domain.ExecutionEntry
	Result json.RawMessage
	Err    error
}

// Run validates parameters against the tool's declared schema, dispatches,
// and records the attempt. Validation failures are recorded without a
// round-trip to the backend.
func (s *Service) Run(ctx context.Context, tool domain.Tool, params map[string]any) Outcome {
	if err := s.validator.Validate(tool, params); err != nil {
		return s.settle(tool.ID, tool.Name, params, nil, 0, err)
	}

	started := s.now()
	result, err := s.tools.Execute(ctx, tool.ID, params)
	elapsed := s.now().Sub(started)
	return s.settle(tool.ID, tool.Name, params, result, elapsed, err)
}

// BulkReport aggregates a settle-all bulk run.
type BulkReport struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
}

// RunBulk executes every request concurrently and waits for all of them.
// One failure never cancels the rest; each outcome is recorded
// independently, in completion order.
func (s *Service) RunBulk(ctx context.Context, requests []Request) BulkReport {
	outcomes := make([]Outcome, len(requests))
	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			outcomes[i] = s.Run(ctx, req.Tool, req.Params)
		}(i, req)
	}
	wg.Wait()

	report := BulkReport{Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}
	return report
}

// Request is one tool invocation in a bulk run.
type Request struct {
	Tool   domain.Tool
	Params map[string]any
}

// RunWorkflow issues a chat-style workflow test and records it like any
// other execution under a synthetic tool id.
func (s *Service) RunWorkflow(ctx context.Context, message, sessionID string) Outcome {
	started := s.now()
	result, err := s.tools.TestWorkflow(ctx, message, sessionID)
	elapsed := s.now().Sub(started)

	if err == nil {
		var envelope struct {
			Status string `json:"status"`
		}
		if jsonErr := json.Unmarshal(result, &envelope); jsonErr == nil && envelope.Status != "" && envelope.Status != "success" {
			err = &domain.APIError{
				Type:     domain.ErrorExecution,
				Endpoint: "/mcp/test-workflow",
				Message:  "workflow reported status " + envelope.Status,
			}
		}
	}

	params := map[string]any{"message": message, "session_id": sessionID}
	return s.settle("workflow_test", "MCP Workflow Test", params, result, elapsed, err)
}

// settle builds the history entry for an attempt and records it. History
// recording is best effort; a persistence failure never masks the result.
func (s *Service) settle(toolID, toolName string, params map[string]any, result json.RawMessage, elapsed time.Duration, err error) Outcome {
	entry := domain.ExecutionEntry{
		ToolID:          toolID,
		ToolName:        toolName,
		Success:         err == nil,
		ExecutionTimeMS: elapsed.Milliseconds(),
		Result:          result,
	}
	if encoded, jsonErr := json.Marshal(params); jsonErr == nil {
		entry.Parameters = encoded
	}
	if err != nil {
		entry.Error = err.Error()
		entry.ErrorType = domain.ClassifyError(err)
	}

	recorded, recordErr := s.history.Record(entry)
	if recordErr != nil {
		if s.logger != nil {
			s.logger.Warn("failed to record execution", map[string]interface{}{
				"tool_id": toolID,
				"error":   recordErr.Error(),
			})
		}
		recorded = entry
	}
	return Outcome{Entry: recorded, Result: result, Err: err}
}
