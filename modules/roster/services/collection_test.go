package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

func TestCollection_FilterByEmploymentStatus(t *testing.T) {
	env := newTestEnv()
	employed := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	suspended := hydratedWrestler("Bruiser", lifecycle.StatusSuspended)
	unemployed := hydratedWrestler("Crusher", lifecycle.StatusUnemployed)
	future := hydratedWrestler("Duke", lifecycle.StatusFutureEmployment)
	roster := []lifecycle.Entity{employed, suspended, unemployed, future}

	t.Run("employed includes interrupted employments", func(t *testing.T) {
		got, err := env.svc.Collection(roster).
			FilterByEmploymentStatus(lifecycle.StatusEmployed).
			Get()
		require.NoError(t, err)
		require.Equal(t, []lifecycle.Entity{employed, suspended}, got)
	})

	t.Run("future employment", func(t *testing.T) {
		got, err := env.svc.Collection(roster).
			FilterByEmploymentStatus(lifecycle.StatusFutureEmployment).
			Get()
		require.NoError(t, err)
		require.Equal(t, []lifecycle.Entity{future}, got)
	})

	t.Run("unsupported literal fails at the builder", func(t *testing.T) {
		_, err := env.svc.Collection(roster).
			FilterByEmploymentStatus(lifecycle.StatusRetired).
			Get()
		require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
	})
}

func TestCollection_BuilderErrorSticksAndWins(t *testing.T) {
	env := newTestEnv()
	roster := []lifecycle.Entity{hydratedWrestler("Ace", lifecycle.StatusEmployed)}

	c := env.svc.Collection(roster).
		FilterBySuspensionStatus(lifecycle.StatusEmployed). // invalid
		FilterByEmploymentStatus(lifecycle.StatusEmployed)  // valid, but too late

	_, err := c.Get()
	require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)

	_, err = c.GetStatistics()
	require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)

	_, err = c.BatchSuspend(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
	require.Empty(t, env.repo.calls)
}

func TestCollection_FiltersAndOrderPreserving(t *testing.T) {
	env := newTestEnv()
	a := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	b := hydratedManager("Bruno", lifecycle.StatusEmployed)
	c := hydratedWrestler("Crusher", lifecycle.StatusInjured)
	d := hydratedWrestler("Duke", lifecycle.StatusEmployed)
	roster := []lifecycle.Entity{a, b, c, d}

	got, err := env.svc.Collection(roster).
		FilterByType(lifecycle.TypeWrestler).
		FilterByEmploymentStatus(lifecycle.StatusEmployed).
		FilterByAvailability(true).
		Get()
	require.NoError(t, err)
	require.Equal(t, []lifecycle.Entity{a, d}, got)
}

func TestCollection_AvailabilityWithMissingCapabilities(t *testing.T) {
	env := newTestEnv()

	// A stable is neither suspendable nor injurable; those sub-checks must
	// pass rather than exclude it.
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusEmployed, nil, nil, nil)
	team := tagteam.Hydrate(newID(), "Demolition", lifecycle.StatusEmployed, nil, nil, nil)
	suspended := hydratedWrestler("Bruiser", lifecycle.StatusSuspended)
	retired := hydratedWrestler("Grizzly", lifecycle.StatusRetired)

	got, err := env.svc.Collection([]lifecycle.Entity{st, team, suspended, retired}).
		FilterByAvailability(true).
		Get()
	require.NoError(t, err)
	require.Equal(t, []lifecycle.Entity{st, team}, got)
}

func TestCollection_GroupByStatus(t *testing.T) {
	env := newTestEnv()
	a := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	b := hydratedWrestler("Bruiser", lifecycle.StatusEmployed)
	c := hydratedWrestler("Crusher", lifecycle.StatusRetired)

	groups, err := env.svc.Collection([]lifecycle.Entity{a, b, c}).GroupByStatus()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, []lifecycle.Entity{a, b}, groups[lifecycle.StatusEmployed])
	require.Equal(t, []lifecycle.Entity{c}, groups[lifecycle.StatusRetired])
}

func TestCollection_GetStatistics(t *testing.T) {
	env := newTestEnv()
	roster := []lifecycle.Entity{
		hydratedWrestler("Ace", lifecycle.StatusEmployed),
		hydratedWrestler("Bruiser", lifecycle.StatusSuspended),
		hydratedWrestler("Crusher", lifecycle.StatusInjured),
		hydratedWrestler("Duke", lifecycle.StatusUnemployed),
		hydratedWrestler("Eugene", lifecycle.StatusFutureEmployment),
		hydratedWrestler("Fritz", lifecycle.StatusReleased),
		hydratedWrestler("Grizzly", lifecycle.StatusRetired),
	}

	stats, err := env.svc.Collection(roster).GetStatistics()
	require.NoError(t, err)
	require.Equal(t, Statistics{
		Total:      7,
		Employed:   1,
		Unemployed: 3,
		Suspended:  1,
		Injured:    1,
		Retired:    1,
		Available:  1,
	}, stats)
}

func TestCollection_BatchSuspend(t *testing.T) {
	env := newTestEnv()
	a := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	b := hydratedWrestler("Bruiser", lifecycle.StatusEmployed)

	result, err := env.svc.Collection([]lifecycle.Entity{a, b}).BatchSuspend(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 2, result.Attempted)
	require.Equal(t, []lifecycle.Key{lifecycle.KeyOf(a), lifecycle.KeyOf(b)}, result.Applied)
	require.Empty(t, result.Skipped)
	require.Equal(t, []string{"suspension Ace", "suspension Bruiser"}, env.repo.ops())
}

func TestCollection_BatchSuspendAbortsOnGuardFailure(t *testing.T) {
	env := newTestEnv()
	a := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	b := hydratedWrestler("Bruiser", lifecycle.StatusRetired)

	_, err := env.svc.Collection([]lifecycle.Entity{a, b}).BatchSuspend(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrGuardFailed)
}

func TestCollection_BatchInjureSkipsIncapable(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	team := tagteam.Hydrate(newID(), "Demolition", lifecycle.StatusEmployed, nil, nil, nil)

	result, err := env.svc.Collection([]lifecycle.Entity{w, team}).BatchInjure(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 2, result.Attempted)
	require.Equal(t, []lifecycle.Key{lifecycle.KeyOf(w)}, result.Applied)
	require.Equal(t, []lifecycle.Key{lifecycle.KeyOf(team)}, result.Skipped)
	require.Equal(t, []string{"injury Ace"}, env.repo.ops())
}
