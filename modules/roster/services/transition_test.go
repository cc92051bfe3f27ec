package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/serrors"
)

func hydratedWrestler(name string, status lifecycle.Status) *wrestler.Wrestler {
	return wrestler.Hydrate(newID(), name, "Parts Unknown", status, nil, nil)
}

func TestTransitionPipeline_Employ(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"employment Luna"}, env.repo.ops())
	require.Equal(t, testNow, env.repo.calls[0].date)
}

func TestTransitionPipeline_ExplicitDateAndNotes(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusEmployed)
	date := testNow.AddDate(0, 1, 0)

	err := env.svc.Transition(w, lifecycle.TransitionSuspend).
		OnDate(date).
		WithNotes("conduct policy").
		Execute(env.ctx)
	require.NoError(t, err)
	require.Len(t, env.repo.calls, 1)
	require.Equal(t, date, env.repo.calls[0].date)
	require.Equal(t, "conduct policy", env.repo.calls[0].notes)
}

func TestTransitionPipeline_EmployRetiredClosesRetirementFirst(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Grizzly", lifecycle.StatusRetired)

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"end-retirement Grizzly", "employment Grizzly"}, env.repo.ops())
}

func TestTransitionPipeline_EndRetirementFailureAbortsEmployment(t *testing.T) {
	env := newTestEnv()
	env.repo.failOn["end-retirement"] = errors.New("no open retirement period")
	w := hydratedWrestler("Grizzly", lifecycle.StatusRetired)

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).Execute(env.ctx)
	require.Error(t, err)
	require.Empty(t, env.repo.calls)
}

func TestTransitionPipeline_ValidationRunsBeforeMutation(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)
	veto := errors.New("not on this card")

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).
		WithValidation(func(lifecycle.Entity, lifecycle.Transition) error { return veto }).
		Execute(env.ctx)
	require.ErrorIs(t, err, veto)
	require.Empty(t, env.repo.calls)
}

func TestTransitionPipeline_ValidationOrder(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	var order []string
	err := env.svc.Transition(w, lifecycle.TransitionEmploy).
		WithValidation(func(lifecycle.Entity, lifecycle.Transition) error {
			order = append(order, "first")
			return nil
		}).
		WithValidation(func(lifecycle.Entity, lifecycle.Transition) error {
			order = append(order, "second")
			return nil
		}).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestTransitionPipeline_GuardRejectsSuspendingUnemployed(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	err := env.svc.Transition(w, lifecycle.TransitionSuspend).Execute(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrGuardFailed)
	require.True(t, serrors.IsValidation(err))
	require.Empty(t, env.repo.calls)
}

func TestTransitionPipeline_UnknownTransition(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	err := env.svc.Transition(w, lifecycle.Transition("promote")).Execute(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrUnknownTransition)
	require.True(t, serrors.IsConfiguration(err))
	require.Empty(t, env.repo.calls)
}

func TestTransitionPipeline_MissingRepository(t *testing.T) {
	registry := NewRegistry() // nothing registered
	log := testLogger()
	env := newTestEnv()
	svc := NewTransitionService(registry, env.bus, env.clock, log)
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	err := svc.Transition(w, lifecycle.TransitionEmploy).Execute(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrNoRepository)
}

func TestTransitionPipeline_PublishesEvent(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)

	var got *TransitionApplied
	env.bus.Subscribe(func(ev *TransitionApplied) { got = ev })

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).WithNotes("debut").Execute(env.ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, w.ID(), got.Entity.ID())
	require.Equal(t, lifecycle.TransitionEmploy, got.Transition)
	require.Equal(t, testNow, got.Date)
	require.Equal(t, "debut", got.Notes)
}

func TestTransitionPipeline_NoEventOnFailure(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusEmployed)

	published := false
	env.bus.Subscribe(func(*TransitionApplied) { published = true })

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).Execute(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrGuardFailed)
	require.False(t, published)
}

func TestTransitionPipeline_CascadeDepthGuard(t *testing.T) {
	env := newTestEnv()

	// Each level spawns a fresh entity so the visited set never trips; only
	// the depth counter can stop the recursion.
	var runaway lifecycle.CascadeStrategy
	runaway = func(ctx context.Context, _ lifecycle.Entity, date time.Time, _ lifecycle.Transition) error {
		next := hydratedWrestler("Clone", lifecycle.StatusUnemployed)
		return env.svc.Transition(next, lifecycle.TransitionEmploy).
			OnDate(date).
			WithCascade(runaway).
			Execute(ctx)
	}

	w := hydratedWrestler("Origin", lifecycle.StatusUnemployed)
	err := env.svc.Transition(w, lifecycle.TransitionEmploy).
		WithCascade(runaway).
		Execute(env.ctx)
	require.ErrorIs(t, err, lifecycle.ErrCascadeDepth)
}

func TestTransitionPipeline_CascadeFailurePropagates(t *testing.T) {
	env := newTestEnv()
	w := hydratedWrestler("Luna", lifecycle.StatusUnemployed)
	boom := errors.New("cascade boom")

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).
		WithCascade(func(context.Context, lifecycle.Entity, time.Time, lifecycle.Transition) error {
			return boom
		}).
		Execute(env.ctx)
	require.ErrorIs(t, err, boom)
}
