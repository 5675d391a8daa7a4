// Package kv provides string-keyed persistence backends for local state.
package kv

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/wareops/opsctl/internal/pkg/filesystem"
	"github.com/wareops/opsctl/internal/ports"
)

// FileStore stores each key as a file under a state directory. Writes are
// synchronous: the file reflects the value before Set returns. There is no
// cross-process coordination; concurrent writers are last-write-wins.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted under ~/.opsctl/state.
func NewFileStore() *FileStore {
	return &FileStore{dir: filesystem.StateDir()}
}

// NewFileStoreAt returns a store rooted at dir.
func NewFileStoreAt(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get retrieves the value for key, reporting whether it exists.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes the value for key.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.pathFor(key), value, 0o600)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all keys.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.RemoveAll(s.dir)
}

// Dir exposes the backing directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// pathFor hashes the key so arbitrary key strings stay filesystem-safe.
func (s *FileStore) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".json")
}

var _ ports.KeyValueStore = (*FileStore)(nil)
