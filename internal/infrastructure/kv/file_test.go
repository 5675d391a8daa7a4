package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("key", []byte("value")))
	data, found, err := store.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("value"), data)

	require.NoError(t, store.Set("key", []byte("updated")))
	data, _, _ = store.Get("key")
	assert.Equal(t, []byte("updated"), data)
}

func TestFileStoreDelete(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())
	require.NoError(t, store.Set("key", []byte("value")))

	require.NoError(t, store.Delete("key"))
	_, found, err := store.Get("key")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is fine.
	require.NoError(t, store.Delete("key"))
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())
	require.NoError(t, store.Set("a", []byte("1")))
	require.NoError(t, store.Set("b", []byte("2")))

	require.NoError(t, store.Clear())

	_, found, err := store.Get("a")
	require.NoError(t, err)
	assert.False(t, found)

	// The store stays usable after Clear.
	require.NoError(t, store.Set("c", []byte("3")))
}

func TestFileStoreArbitraryKeys(t *testing.T) {
	store := NewFileStoreAt(t.TempDir())

	// Keys with path separators and spaces must not escape the state dir.
	key := "../weird key/with:stuff"
	require.NoError(t, store.Set(key, []byte("ok")))
	data, found, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("ok"), data)
}
