package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/kv"
)

type failingKV struct {
	*kv.Memory
	failSet bool
}

func (f *failingKV) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Memory.Set(key, value)
}

func TestRecordAssignsIdentityAndPrepends(t *testing.T) {
	store := NewStore(kv.NewMemory(), 0, nil)

	first, err := store.Record(domain.ExecutionEntry{ToolID: "a", ToolName: "A", Success: true})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())

	second, err := store.Record(domain.ExecutionEntry{ToolID: "b", ToolName: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ToolID)
	assert.Equal(t, "a", entries[1].ToolID)
}

func TestRecordEnforcesCap(t *testing.T) {
	store := NewStore(kv.NewMemory(), 0, nil)

	for i := 0; i < DefaultMaxEntries+10; i++ {
		_, err := store.Record(domain.ExecutionEntry{ToolID: fmt.Sprintf("tool-%d", i)})
		require.NoError(t, err)
	}

	entries, err := store.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, DefaultMaxEntries)
	// The newest entry survives at the head; the oldest were dropped.
	assert.Equal(t, fmt.Sprintf("tool-%d", DefaultMaxEntries+9), entries[0].ToolID)
	assert.Equal(t, "tool-10", entries[len(entries)-1].ToolID)
}

func TestEntriesSurviveReload(t *testing.T) {
	shared := kv.NewMemory()

	store := NewStore(shared, 10, nil)
	_, err := store.Record(domain.ExecutionEntry{ToolID: "a", Success: true})
	require.NoError(t, err)

	reloaded := NewStore(shared, 10, nil)
	entries, err := reloaded.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ToolID)
}

func TestCorruptStoreStartsEmpty(t *testing.T) {
	shared := kv.NewMemory()
	require.NoError(t, shared.Set(StorageKey, []byte("{not json")))

	store := NewStore(shared, 10, nil)
	entries, err := store.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Recording over a corrupt store works and replaces it.
	_, err = store.Record(domain.ExecutionEntry{ToolID: "fresh"})
	require.NoError(t, err)
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	backing := &failingKV{Memory: kv.NewMemory(), failSet: true}
	store := NewStore(backing, 10, nil)

	recorded, err := store.Record(domain.ExecutionEntry{ToolID: "a"})
	require.NoError(t, err)
	assert.NotEmpty(t, recorded.ID)

	entries, err := store.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPruneKeepsNewest(t *testing.T) {
	shared := kv.NewMemory()
	store := NewStore(shared, 10, nil)
	for i := 0; i < 5; i++ {
		_, err := store.Record(domain.ExecutionEntry{ToolID: fmt.Sprintf("tool-%d", i)})
		require.NoError(t, err)
	}

	removed, err := store.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	entries, err := store.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tool-4", entries[0].ToolID)
	assert.Equal(t, "tool-3", entries[1].ToolID)

	// The pruned state is durable.
	reloaded := NewStore(shared, 10, nil)
	entries, err = reloaded.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	removed, err = store.Prune(10)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestClearEmptiesLog(t *testing.T) {
	shared := kv.NewMemory()
	store := NewStore(shared, 10, nil)
	_, err := store.Record(domain.ExecutionEntry{ToolID: "a"})
	require.NoError(t, err)

	require.NoError(t, store.Clear())

	entries, err := store.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The cleared state is durable.
	reloaded := NewStore(shared, 10, nil)
	entries, err = reloaded.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportJSONL(t *testing.T) {
	store := NewStore(kv.NewMemory(), 10, nil)
	_, err := store.Record(domain.ExecutionEntry{ToolID: "a", Timestamp: time.Now()})
	require.NoError(t, err)
	_, err = store.Record(domain.ExecutionEntry{ToolID: "b", Timestamp: time.Now()})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, store.ExportJSONL(dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
}
