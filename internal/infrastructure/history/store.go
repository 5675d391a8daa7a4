// Package history persists the bounded execution log.
package history

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// StorageKey is where the serialized log lives in the key-value store.
const StorageKey = "mcp_execution_history"

// DefaultMaxEntries caps the log at the most recent entries.
const DefaultMaxEntries = 50

// Store keeps the execution log in memory, newest-first, mirrored to a
// key-value store on every mutation. The in-memory list is authoritative:
// a failed persist is logged and otherwise ignored.
type Store struct {
	kv     ports.KeyValueStore
	max    int
	logger ports.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []domain.ExecutionEntry
	loaded  bool
}

// NewStore builds a store over kv capped at max entries (DefaultMaxEntries
// when max <= 0).
func NewStore(kv ports.KeyValueStore, max int, logger ports.Logger) *Store {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Store{kv: kv, max: max, logger: logger, now: time.Now}
}

// Record implements ports.HistoryRepository.
func (s *Store) Record(entry domain.ExecutionEntry) (domain.ExecutionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	s.entries = append([]domain.ExecutionEntry{entry}, s.entries...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
	s.persistLocked()
	return entry, nil
}

// Entries implements ports.HistoryRepository.
func (s *Store) Entries() ([]domain.ExecutionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	out := make([]domain.ExecutionEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Clear implements ports.HistoryRepository.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.loaded = true
	return s.kv.Delete(StorageKey)
}

// Prune drops everything but the keep newest entries and reports how many
// were removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if len(s.entries) <= keep {
		return 0, nil
	}
	removed := len(s.entries) - keep
	s.entries = s.entries[:keep]
	s.persistLocked()
	return removed, nil
}

// ExportJSONL writes the log to dest, one entry per line, newest first.
func (s *Store) ExportJSONL(dest string) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// loadLocked hydrates the in-memory log once per session. A missing or
// corrupt store is treated as empty, never surfaced to the caller.
func (s *Store) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	data, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.warn("history load failed", err)
		return
	}
	if !ok {
		return
	}
	var entries []domain.ExecutionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.warn("history store corrupt, starting empty", err)
		return
	}
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	s.entries = entries
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.warn("history serialize failed", err)
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.warn("history persist failed", err)
	}
}

func (s *Store) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

var _ ports.HistoryRepository = (*Store)(nil)
