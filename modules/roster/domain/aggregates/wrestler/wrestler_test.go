package wrestler_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

func TestNew(t *testing.T) {
	w := wrestler.New("  Ace Armstrong  ", " Duluth ")
	assert.Equal(t, "Ace Armstrong", w.Name())
	assert.Equal(t, "Duluth", w.Hometown())
	assert.Equal(t, lifecycle.StatusUnemployed, w.Status())
	assert.Equal(t, lifecycle.TypeWrestler, w.Type())
	assert.NotEqual(t, uuid.Nil, w.ID())

	_, inStable := w.CurrentStableID()
	assert.False(t, inStable)
}

func TestHydrate_StableMembership(t *testing.T) {
	stableID := uuid.New()
	w := wrestler.Hydrate(uuid.New(), "Ace", "Duluth", lifecycle.StatusEmployed, nil, &stableID)

	got, ok := w.CurrentStableID()
	require.True(t, ok)
	assert.Equal(t, stableID, got)
}

func TestStatusPredicates(t *testing.T) {
	w := wrestler.Hydrate(uuid.New(), "Ace", "Duluth", lifecycle.StatusSuspended, nil, nil)
	assert.True(t, w.IsEmployed())
	assert.True(t, w.IsSuspended())
	assert.False(t, w.IsInjured())
	require.Error(t, w.EnsureCanBeSuspended())
	require.NoError(t, w.EnsureCanBeReinstated())
}
