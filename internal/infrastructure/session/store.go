// Package session stores the bearer token and user snapshot locally.
package session

import (
	"encoding/json"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// Store implements ports.SessionStore over a key-value store.
type Store struct {
	kv ports.KeyValueStore
}

// NewStore builds a session store over kv.
func NewStore(kv ports.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	data, ok, err := s.kv.Get(tokenKey)
	if err != nil || !ok || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// User returns the stored user snapshot, if any.
func (s *Store) User() (domain.User, bool) {
	data, ok, err := s.kv.Get(userKey)
	if err != nil || !ok {
		return domain.User{}, false
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, false
	}
	return user, true
}

// SetSession persists the token and user snapshot.
func (s *Store) SetSession(session domain.Session) error {
	if err := s.kv.Set(tokenKey, []byte(session.Token)); err != nil {
		return err
	}
	data, err := json.Marshal(session.User)
	if err != nil {
		return err
	}
	return s.kv.Set(userKey, data)
}

// ClearSession discards the stored token and user snapshot.
func (s *Store) ClearSession() error {
	if err := s.kv.Delete(tokenKey); err != nil {
		return err
	}
	return s.kv.Delete(userKey)
}

var _ ports.SessionStore = (*Store)(nil)
