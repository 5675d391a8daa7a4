package domain

import (
	"errors"
	"fmt"
)

// APIError is the classified form of any failure observed while talking to
// the backend.
type APIError struct {
	Type     ErrorType
	Status   int
	Endpoint string
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Type, e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-issuing the original operation is safe.
// Execution-class failures are excluded: resubmitting an already-processed
// request risks duplicate side effects.
func (e *APIError) Retryable() bool {
	return e.Type == ErrorNetwork || e.Type == ErrorTimeout
}

// ClassifyError extracts the error type from err, defaulting to execution.
func ClassifyError(err error) ErrorType {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ErrorExecution
}

// ErrUnauthorized signals that the stored session was rejected by the
// backend. The stored token has already been invalidated when this surfaces.
var ErrUnauthorized = errors.New("authentication required: run 'opsctl auth login'")
