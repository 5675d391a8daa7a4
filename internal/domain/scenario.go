package domain

import (
	"errors"
	"time"
)

// Scenario is a saved workflow-test message that can be replayed on demand.
type Scenario struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Message     string     `json:"message"`
	Description string     `json:"description,omitempty"`
	Created     time.Time  `json:"created"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
}

// Validate enforces the persistence invariant: name and message non-empty.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return errors.New("scenario name is required")
	}
	if s.Message == "" {
		return errors.New("scenario message is required")
	}
	return nil
}
