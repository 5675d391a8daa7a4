package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/pkg/filesystem"
	"github.com/wareops/opsctl/internal/ports"
)

// SQLiteStore persists the execution log in a SQLite database. It enforces
// the same cap and newest-first ordering as the key-value Store and is
// selected with history.backend: sqlite.
type SQLiteStore struct {
	db   *sql.DB
	path string
	max  int
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) ~/.opsctl/history.db.
func NewSQLiteStore(max int) *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.ConfigDir(), "history.db"), max)
}

// NewSQLiteStoreAt creates (or opens) a database at path.
func NewSQLiteStoreAt(path string, max int) *SQLiteStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	store := &SQLiteStore{path: path, max: max}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS executions (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		tool_id TEXT,
		tool_name TEXT,
		success INTEGER,
		execution_time_ms INTEGER,
		result TEXT,
		error TEXT,
		error_type TEXT,
		parameters TEXT
	);`)
	return err
}

// Record inserts a new entry and evicts everything beyond the cap.
func (s *SQLiteStore) Record(entry domain.ExecutionEntry) (domain.ExecutionEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if s.db == nil {
		return entry, os.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO executions
		(id, timestamp, tool_id, tool_name, success, execution_time_ms, result, error, error_type, parameters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(time.RFC3339Nano),
		entry.ToolID,
		entry.ToolName,
		boolToInt(entry.Success),
		entry.ExecutionTimeMS,
		string(entry.Result),
		entry.Error,
		string(entry.ErrorType),
		string(entry.Parameters),
	)
	if err != nil {
		return entry, err
	}
	_, err = s.db.Exec(`DELETE FROM executions WHERE id NOT IN (
		SELECT id FROM executions ORDER BY datetime(timestamp) DESC LIMIT ?)`, s.max)
	return entry, err
}

// Entries returns the log newest-first, up to the cap.
func (s *SQLiteStore) Entries() ([]domain.ExecutionEntry, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT id, timestamp, tool_id, tool_name, success,
		execution_time_ms, result, error, error_type, parameters
		FROM executions ORDER BY datetime(timestamp) DESC LIMIT ?`, s.max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.ExecutionEntry
	for rows.Next() {
		var entry domain.ExecutionEntry
		var ts, result, errType, params string
		var success int
		if err := rows.Scan(&entry.ID, &ts, &entry.ToolID, &entry.ToolName, &success,
			&entry.ExecutionTimeMS, &result, &entry.Error, &errType, &params); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Timestamp = t
		}
		entry.Success = success == 1
		entry.ErrorType = domain.ErrorType(errType)
		if result != "" {
			entry.Result = json.RawMessage(result)
		}
		if params != "" {
			entry.Parameters = json.RawMessage(params)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune drops everything but the keep newest entries and reports how many
// were removed.
func (s *SQLiteStore) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	if s.db == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.db.Exec(`DELETE FROM executions WHERE id NOT IN (
		SELECT id FROM executions ORDER BY datetime(timestamp) DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	removed, err := result.RowsAffected()
	return int(removed), err
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec("DELETE FROM executions")
	return err
}

// ExportJSONL writes the log to dest, one entry per line, newest first.
func (s *SQLiteStore) ExportJSONL(dest string) error {
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

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
