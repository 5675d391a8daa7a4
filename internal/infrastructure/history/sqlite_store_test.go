package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
)

func newTestSQLiteStore(t *testing.T, max int) *SQLiteStore {
	t.Helper()
	return NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"), max)
}

func TestSQLiteRecordRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t, 10)

	recorded, err := store.Record(domain.ExecutionEntry{
		ToolID:          "inv_check",
		ToolName:        "Inventory Check",
		Success:         false,
		ExecutionTimeMS: 412,
		Error:           "backend timeout",
		ErrorType:       domain.ErrorTimeout,
		Result:          json.RawMessage(`{"status":"error"}`),
		Parameters:      json.RawMessage(`{"zone":"A"}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, recorded.ID)

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, recorded.ID, got.ID)
	assert.Equal(t, "inv_check", got.ToolID)
	assert.False(t, got.Success)
	assert.Equal(t, int64(412), got.ExecutionTimeMS)
	assert.Equal(t, domain.ErrorTimeout, got.ErrorType)
	assert.JSONEq(t, `{"zone":"A"}`, string(got.Parameters))
}

func TestSQLiteNewestFirstAndCap(t *testing.T) {
	store := newTestSQLiteStore(t, 5)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		_, err := store.Record(domain.ExecutionEntry{
			ToolID:    fmt.Sprintf("tool-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "tool-7", entries[0].ToolID)
	assert.Equal(t, "tool-3", entries[4].ToolID)
}

func TestSQLitePruneKeepsNewest(t *testing.T) {
	store := newTestSQLiteStore(t, 10)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		_, err := store.Record(domain.ExecutionEntry{
			ToolID:    fmt.Sprintf("tool-%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	removed, err := store.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tool-5", entries[0].ToolID)
	assert.Equal(t, "tool-4", entries[1].ToolID)
}

func TestSQLiteClear(t *testing.T) {
	store := newTestSQLiteStore(t, 5)
	_, err := store.Record(domain.ExecutionEntry{ToolID: "a"})
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	entries, err := store.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store := NewSQLiteStoreAt(path, 5)
	_, err := store.Record(domain.ExecutionEntry{ToolID: "durable"})
	require.NoError(t, err)

	reopened := NewSQLiteStoreAt(path, 5)
	entries, err := reopened.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "durable", entries[0].ToolID)
}
