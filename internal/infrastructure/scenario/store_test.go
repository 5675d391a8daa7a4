package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/kv"
)

func TestSaveAssignsIdentity(t *testing.T) {
	store := NewStore(kv.NewMemory(), nil)

	saved, err := store.Save(domain.Scenario{Name: "morning check", Message: "run inventory audit"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Created.IsZero())
	assert.Nil(t, saved.LastUsed)
}

func TestSaveRejectsIncomplete(t *testing.T) {
	store := NewStore(kv.NewMemory(), nil)

	_, err := store.Save(domain.Scenario{Message: "no name"})
	assert.Error(t, err)
	_, err = store.Save(domain.Scenario{Name: "no message"})
	assert.Error(t, err)

	scenarios, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestTouchStampsLastUsed(t *testing.T) {
	store := NewStore(kv.NewMemory(), nil)
	used := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return used }

	saved, err := store.Save(domain.Scenario{Name: "n", Message: "m"})
	require.NoError(t, err)

	touched, err := store.Touch(saved.ID)
	require.NoError(t, err)
	require.NotNil(t, touched.LastUsed)
	assert.Equal(t, used, *touched.LastUsed)

	scenarios, err := store.List()
	require.NoError(t, err)
	require.NotNil(t, scenarios[0].LastUsed)
}

func TestTouchUnknownScenario(t *testing.T) {
	store := NewStore(kv.NewMemory(), nil)
	_, err := store.Touch("missing")
	assert.Error(t, err)
}

func TestDeleteRemovesScenario(t *testing.T) {
	store := NewStore(kv.NewMemory(), nil)
	first, err := store.Save(domain.Scenario{Name: "a", Message: "m"})
	require.NoError(t, err)
	_, err = store.Save(domain.Scenario{Name: "b", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(first.ID))

	scenarios, err := store.List()
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "b", scenarios[0].Name)

	assert.Error(t, store.Delete(first.ID))
}

func TestScenariosSurviveReload(t *testing.T) {
	shared := kv.NewMemory()
	store := NewStore(shared, nil)
	_, err := store.Save(domain.Scenario{Name: "persisted", Message: "m"})
	require.NoError(t, err)

	reloaded := NewStore(shared, nil)
	scenarios, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "persisted", scenarios[0].Name)
}
