package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/manager"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

func hydratedManager(name string, status lifecycle.Status) *manager.Manager {
	return manager.Hydrate(newID(), name, status)
}

func TestCascadeAllMembers_Order(t *testing.T) {
	env := newTestEnv()

	w1 := hydratedWrestler("Ace", lifecycle.StatusUnemployed)
	w2 := hydratedWrestler("Bruiser", lifecycle.StatusUnemployed)
	teamWrestler := hydratedWrestler("Crusher", lifecycle.StatusUnemployed)
	teamManager := hydratedManager("Duke", lifecycle.StatusUnemployed)
	team := tagteam.Hydrate(newID(), "Demolition", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{teamWrestler}, []lifecycle.Entity{teamManager}, nil)
	mgr := hydratedManager("Eugene", lifecycle.StatusUnemployed)
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{w1, w2}, []lifecycle.Entity{team}, []lifecycle.Entity{mgr})

	err := env.svc.Transition(st, lifecycle.TransitionEmploy).
		WithCascade(env.svc.CascadeAllMembers()).
		Execute(env.ctx)
	require.NoError(t, err)

	require.Equal(t, []string{
		"employment The Family",
		"employment Ace",
		"employment Bruiser",
		"employment Demolition",
		"employment Crusher",
		"employment Duke",
		"employment Eugene",
	}, env.repo.ops())
}

func TestCascadeAllMembers_SkipsAlreadyEmployed(t *testing.T) {
	env := newTestEnv()

	hired := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	unhired := hydratedWrestler("Bruiser", lifecycle.StatusUnemployed)
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{hired, unhired}, nil, nil)

	err := env.svc.Transition(st, lifecycle.TransitionEmploy).
		WithCascade(env.svc.CascadeAllMembers()).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"employment The Family", "employment Bruiser"}, env.repo.ops())
}

func TestCascadeAllMembers_VisitedSetBreaksSharedMembership(t *testing.T) {
	env := newTestEnv()

	// The same wrestler sits both directly in the stable and inside one of
	// its tag teams. The visited set keys on (type, id), so the second
	// encounter is a no-op.
	shared := hydratedWrestler("Crusher", lifecycle.StatusUnemployed)
	team := tagteam.Hydrate(newID(), "Demolition", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{shared}, nil, nil)
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{shared}, []lifecycle.Entity{team}, nil)

	err := env.svc.Transition(st, lifecycle.TransitionEmploy).
		WithCascade(env.svc.CascadeAllMembers()).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"employment The Family",
		"employment Crusher",
		"employment Demolition",
	}, env.repo.ops())
}

func TestCascadeAllMembers_EmployedTeamStillCarriesItsMembers(t *testing.T) {
	env := newTestEnv()

	teamWrestler := hydratedWrestler("Crusher", lifecycle.StatusUnemployed)
	team := tagteam.Hydrate(newID(), "Demolition", lifecycle.StatusEmployed,
		[]lifecycle.Entity{teamWrestler}, nil, nil)
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusUnemployed,
		nil, []lifecycle.Entity{team}, nil)

	err := env.svc.Transition(st, lifecycle.TransitionEmploy).
		WithCascade(env.svc.CascadeAllMembers()).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"employment The Family", "employment Crusher"}, env.repo.ops())
}

func TestCascadeAllMembers_OnlyFiresOnEmploy(t *testing.T) {
	env := newTestEnv()

	w := hydratedWrestler("Ace", lifecycle.StatusEmployed)
	st := stable.Hydrate(newID(), "The Family", lifecycle.StatusEmployed,
		[]lifecycle.Entity{w}, nil, nil)

	err := env.svc.Transition(st, lifecycle.TransitionRetire).
		WithCascade(env.svc.CascadeAllMembers()).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"retirement The Family"}, env.repo.ops())
}

func TestCascadeRelated(t *testing.T) {
	env := newTestEnv()

	mgr := hydratedManager("Duke", lifecycle.StatusUnemployed)
	w := wrestler.Hydrate(newID(), "Ace", "Parts Unknown", lifecycle.StatusUnemployed,
		[]lifecycle.Entity{mgr}, nil)

	err := env.svc.Transition(w, lifecycle.TransitionEmploy).
		WithCascade(env.svc.CascadeRelated(func(e lifecycle.Entity) []lifecycle.Entity {
			return e.(lifecycle.HasManagers).CurrentManagers()
		})).
		Execute(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"employment Ace", "employment Duke"}, env.repo.ops())
}
