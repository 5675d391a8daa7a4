// Package scenario persists saved workflow-test scenarios.
package scenario

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// StorageKey is where the serialized scenario list lives.
const StorageKey = "test_scenarios"

// Store keeps scenarios in a key-value store as a single JSON array.
type Store struct {
	kv     ports.KeyValueStore
	logger ports.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewStore builds a scenario store over kv.
func NewStore(kv ports.KeyValueStore, logger ports.Logger) *Store {
	return &Store{kv: kv, logger: logger, now: time.Now}
}

// Save validates and persists a scenario, assigning id and creation time.
func (s *Store) Save(scenario domain.Scenario) (domain.Scenario, error) {
	if err := scenario.Validate(); err != nil {
		return domain.Scenario{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	scenarios := s.loadLocked()
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
	}
	if scenario.Created.IsZero() {
		scenario.Created = s.now()
	}
	scenarios = append(scenarios, scenario)
	if err := s.persistLocked(scenarios); err != nil {
		return domain.Scenario{}, err
	}
	return scenario, nil
}

// List returns all saved scenarios in save order.
func (s *Store) List() ([]domain.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(), nil
}

// Touch stamps LastUsed on the scenario with the given id.
func (s *Store) Touch(id string) (domain.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scenarios := s.loadLocked()
	for i := range scenarios {
		if scenarios[i].ID == id {
			used := s.now()
			scenarios[i].LastUsed = &used
			if err := s.persistLocked(scenarios); err != nil {
				return domain.Scenario{}, err
			}
			return scenarios[i], nil
		}
	}
	return domain.Scenario{}, fmt.Errorf("scenario %s not found", id)
}

// Delete removes the scenario with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scenarios := s.loadLocked()
	kept := scenarios[:0]
	found := false
	for _, sc := range scenarios {
		if sc.ID == id {
			found = true
			continue
		}
		kept = append(kept, sc)
	}
	if !found {
		return fmt.Errorf("scenario %s not found", id)
	}
	return s.persistLocked(kept)
}

func (s *Store) loadLocked() []domain.Scenario {
	data, ok, err := s.kv.Get(StorageKey)
	if err != nil || !ok {
		return nil
	}
	var scenarios []domain.Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		if s.logger != nil {
			s.logger.Warn("scenario store corrupt, starting empty", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	return scenarios
}

func (s *Store) persistLocked(scenarios []domain.Scenario) error {
	data, err := json.Marshal(scenarios)
	if err != nil {
		return err
	}
	return s.kv.Set(StorageKey, data)
}

var _ ports.ScenarioRepository = (*Store)(nil)
