package domain

import (
	"encoding/json"
	"time"
)

// ErrorType classifies why an invocation failed.
type ErrorType string

const (
	// ErrorNetwork means the request could not complete at the transport level.
	ErrorNetwork ErrorType = "network"
	// ErrorTimeout means the request exceeded its deadline.
	ErrorTimeout ErrorType = "timeout"
	// ErrorValidation means a client-side parameter check failed before dispatch.
	ErrorValidation ErrorType = "validation"
	// ErrorExecution means the backend reported a logical failure.
	ErrorExecution ErrorType = "execution"
)

// ExecutionEntry records the outcome of a single tool or workflow invocation.
// Entries are immutable once recorded.
type ExecutionEntry struct {
	ID              string          `json:"id"`
	Timestamp       time.Time       `json:"timestamp"`
	ToolID          string          `json:"tool_id"`
	ToolName        string          `json:"tool_name"`
	Success         bool            `json:"success"`
	ExecutionTimeMS int64           `json:"execution_time_ms"`
	Result          json.RawMessage `json:"result,omitempty"`
	Error           string          `json:"error,omitempty"`
	ErrorType       ErrorType       `json:"error_type,omitempty"`
	Parameters      json.RawMessage `json:"parameters,omitempty"`
}

// Failed reports whether the entry carries an error classification.
func (e ExecutionEntry) Failed() bool {
	return !e.Success
}
