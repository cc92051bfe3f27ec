package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

func testWrestler(status lifecycle.Status) *wrestler.Wrestler {
	return wrestler.Hydrate(uuid.New(), "Ace", "Duluth", status, nil, nil)
}

func TestStatus_CountsAsEmployed(t *testing.T) {
	assert.True(t, lifecycle.StatusEmployed.CountsAsEmployed())
	assert.True(t, lifecycle.StatusSuspended.CountsAsEmployed())
	assert.True(t, lifecycle.StatusInjured.CountsAsEmployed())
	assert.False(t, lifecycle.StatusUnemployed.CountsAsEmployed())
	assert.False(t, lifecycle.StatusFutureEmployment.CountsAsEmployed())
	assert.False(t, lifecycle.StatusRetired.CountsAsEmployed())
	assert.False(t, lifecycle.StatusReleased.CountsAsEmployed())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, lifecycle.StatusEmployed.Valid())
	assert.False(t, lifecycle.Status("moonlighting").Valid())
	assert.False(t, lifecycle.Status("").Valid())
}

func TestTransition_Valid(t *testing.T) {
	for _, tr := range []lifecycle.Transition{
		lifecycle.TransitionEmploy, lifecycle.TransitionSuspend, lifecycle.TransitionRelease,
		lifecycle.TransitionRetire, lifecycle.TransitionInjure, lifecycle.TransitionReinstate,
	} {
		assert.True(t, tr.Valid(), string(tr))
	}
	assert.False(t, lifecycle.Transition("promote").Valid())
}

func TestDefaultGuard(t *testing.T) {
	cases := []struct {
		name       string
		entity     lifecycle.Entity
		transition lifecycle.Transition
		allowed    bool
	}{
		{"employ unemployed", testWrestler(lifecycle.StatusUnemployed), lifecycle.TransitionEmploy, true},
		{"employ released", testWrestler(lifecycle.StatusReleased), lifecycle.TransitionEmploy, true},
		{"employ retired", testWrestler(lifecycle.StatusRetired), lifecycle.TransitionEmploy, true},
		{"employ employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionEmploy, false},
		{"employ suspended", testWrestler(lifecycle.StatusSuspended), lifecycle.TransitionEmploy, false},
		{"suspend employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionSuspend, true},
		{"suspend suspended", testWrestler(lifecycle.StatusSuspended), lifecycle.TransitionSuspend, false},
		{"suspend injured", testWrestler(lifecycle.StatusInjured), lifecycle.TransitionSuspend, false},
		{"suspend unemployed", testWrestler(lifecycle.StatusUnemployed), lifecycle.TransitionSuspend, false},
		{"injure employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionInjure, true},
		{"injure suspended", testWrestler(lifecycle.StatusSuspended), lifecycle.TransitionInjure, false},
		{"retire employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionRetire, true},
		{"retire suspended", testWrestler(lifecycle.StatusSuspended), lifecycle.TransitionRetire, true},
		{"retire released", testWrestler(lifecycle.StatusReleased), lifecycle.TransitionRetire, true},
		{"retire retired", testWrestler(lifecycle.StatusRetired), lifecycle.TransitionRetire, false},
		{"retire unemployed", testWrestler(lifecycle.StatusUnemployed), lifecycle.TransitionRetire, false},
		{"release employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionRelease, true},
		{"release injured", testWrestler(lifecycle.StatusInjured), lifecycle.TransitionRelease, true},
		{"release unemployed", testWrestler(lifecycle.StatusUnemployed), lifecycle.TransitionRelease, false},
		{"reinstate suspended", testWrestler(lifecycle.StatusSuspended), lifecycle.TransitionReinstate, true},
		{"reinstate employed", testWrestler(lifecycle.StatusEmployed), lifecycle.TransitionReinstate, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.transition.DefaultGuard(tc.entity)
			if tc.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, lifecycle.ErrGuardFailed)
			}
		})
	}
}

func TestDefaultGuard_CapabilityGaps(t *testing.T) {
	team := tagteam.Hydrate(uuid.New(), "Demolition", lifecycle.StatusEmployed, nil, nil, nil)
	require.ErrorIs(t, lifecycle.TransitionInjure.DefaultGuard(team), lifecycle.ErrGuardFailed)

	st := stable.Hydrate(uuid.New(), "The Family", lifecycle.StatusEmployed, nil, nil, nil)
	require.ErrorIs(t, lifecycle.TransitionSuspend.DefaultGuard(st), lifecycle.ErrGuardFailed)
	require.ErrorIs(t, lifecycle.TransitionRelease.DefaultGuard(st), lifecycle.ErrGuardFailed)
	require.NoError(t, lifecycle.TransitionRetire.DefaultGuard(st))
}

func TestDefaultGuard_UnknownTransition(t *testing.T) {
	err := lifecycle.Transition("promote").DefaultGuard(testWrestler(lifecycle.StatusEmployed))
	require.ErrorIs(t, err, lifecycle.ErrUnknownTransition)
}

type endRetirementRecorder struct {
	lifecycle.StateRepository
	ended bool
}

func (r *endRetirementRecorder) EndRetirement(context.Context, lifecycle.Entity, time.Time) error {
	r.ended = true
	return nil
}

func TestEndPriorState(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("employ closes an open retirement", func(t *testing.T) {
		repo := &endRetirementRecorder{}
		err := lifecycle.TransitionEmploy.EndPriorState(ctx, repo, testWrestler(lifecycle.StatusRetired), date)
		require.NoError(t, err)
		require.True(t, repo.ended)
	})

	t.Run("employ of non-retired is a no-op", func(t *testing.T) {
		repo := &endRetirementRecorder{}
		err := lifecycle.TransitionEmploy.EndPriorState(ctx, repo, testWrestler(lifecycle.StatusUnemployed), date)
		require.NoError(t, err)
		require.False(t, repo.ended)
	})

	t.Run("other transitions have no ending rule", func(t *testing.T) {
		repo := &endRetirementRecorder{}
		err := lifecycle.TransitionSuspend.EndPriorState(ctx, repo, testWrestler(lifecycle.StatusEmployed), date)
		require.NoError(t, err)
		require.False(t, repo.ended)
	})
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	assert.Equal(t, now, lifecycle.ResolveDate(clock, time.Time{}))

	explicit := now.AddDate(0, 1, 0)
	assert.Equal(t, explicit, lifecycle.ResolveDate(clock, explicit))
}

func TestValidateRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, lifecycle.ValidateRange(start, time.Time{}))
	require.NoError(t, lifecycle.ValidateRange(start, start))
	require.NoError(t, lifecycle.ValidateRange(start, start.AddDate(0, 1, 0)))
	require.ErrorIs(t, lifecycle.ValidateRange(start, start.AddDate(0, -1, 0)), lifecycle.ErrInvalidDateRange)
}
