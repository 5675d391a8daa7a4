package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/kv"
)

func TestSessionRoundTrip(t *testing.T) {
	store := NewStore(kv.NewMemory())

	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.SetSession(domain.Session{
		Token: "bearer-token",
		User:  domain.User{ID: 7, Username: "picker1", Role: "operator"},
	}))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "bearer-token", token)

	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "picker1", user.Username)
}

func TestClearSession(t *testing.T) {
	store := NewStore(kv.NewMemory())
	require.NoError(t, store.SetSession(domain.Session{Token: "x", User: domain.User{Username: "u"}}))

	require.NoError(t, store.ClearSession())

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.User()
	assert.False(t, ok)
}
