package services

import (
	"context"
	"time"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// Cascade strategy factories. Every strategy is gated on the transition that
// triggered it and only ever spawns further pipelines; none of them mutate
// the entity they receive. Within one top-level pipeline call the shared
// cascade scope makes re-invocation on an already-visited entity a no-op.

// CascadeManagers employs every currently-unemployed manager of the entity.
func (s *TransitionService) CascadeManagers() lifecycle.CascadeStrategy {
	return func(ctx context.Context, e lifecycle.Entity, date time.Time, tr lifecycle.Transition) error {
		if tr != lifecycle.TransitionEmploy {
			return nil
		}
		hm, ok := e.(lifecycle.HasManagers)
		if !ok {
			return nil
		}
		return s.transitionAll(ctx, hm.CurrentManagers(), lifecycle.TransitionEmploy, date)
	}
}

// CascadeWrestlers employs every currently-unemployed wrestler of the entity.
func (s *TransitionService) CascadeWrestlers() lifecycle.CascadeStrategy {
	return func(ctx context.Context, e lifecycle.Entity, date time.Time, tr lifecycle.Transition) error {
		if tr != lifecycle.TransitionEmploy {
			return nil
		}
		hw, ok := e.(lifecycle.HasWrestlers)
		if !ok {
			return nil
		}
		return s.transitionAll(ctx, hw.CurrentWrestlers(), lifecycle.TransitionEmploy, date)
	}
}

// CascadeTagTeams employs every currently-unemployed tag team of the entity
// and re-applies the wrestler and manager cascades to each team, employed or
// not, so a team brought in by a stable carries its own members along.
func (s *TransitionService) CascadeTagTeams() lifecycle.CascadeStrategy {
	wrestlers := s.CascadeWrestlers()
	managers := s.CascadeManagers()
	return func(ctx context.Context, e lifecycle.Entity, date time.Time, tr lifecycle.Transition) error {
		if tr != lifecycle.TransitionEmploy {
			return nil
		}
		ht, ok := e.(lifecycle.HasTagTeams)
		if !ok {
			return nil
		}
		for _, team := range ht.CurrentTagTeams() {
			if eligibleFor(team, lifecycle.TransitionEmploy) && s.firstVisit(ctx, team) {
				err := s.Transition(team, lifecycle.TransitionEmploy).
					OnDate(date).
					WithCascade(wrestlers).
					WithCascade(managers).
					Execute(ctx)
				if err != nil {
					return err
				}
				continue
			}
			if err := wrestlers(ctx, team, date, tr); err != nil {
				return err
			}
			if err := managers(ctx, team, date, tr); err != nil {
				return err
			}
		}
		return nil
	}
}

// CascadeAllMembers employs members in order wrestlers, tag teams, managers.
// The cascade scope's visited set keys on (type, id) and lasts for one
// top-level pipeline call, so mutual relationships (stable, member, stable)
// are walked at most once.
func (s *TransitionService) CascadeAllMembers() lifecycle.CascadeStrategy {
	wrestlers := s.CascadeWrestlers()
	tagTeams := s.CascadeTagTeams()
	managers := s.CascadeManagers()
	return func(ctx context.Context, e lifecycle.Entity, date time.Time, tr lifecycle.Transition) error {
		if tr != lifecycle.TransitionEmploy {
			return nil
		}
		if !s.firstVisit(ctx, e) {
			return nil
		}
		for _, cascade := range []lifecycle.CascadeStrategy{wrestlers, tagTeams, managers} {
			if err := cascade(ctx, e, date, tr); err != nil {
				return err
			}
		}
		return nil
	}
}

// CascadeRelated is the generic cascade over arbitrary relationship
// accessors, employing the not-yet-employed targets of each.
func (s *TransitionService) CascadeRelated(accessors ...func(lifecycle.Entity) []lifecycle.Entity) lifecycle.CascadeStrategy {
	return func(ctx context.Context, e lifecycle.Entity, date time.Time, tr lifecycle.Transition) error {
		if tr != lifecycle.TransitionEmploy {
			return nil
		}
		for _, accessor := range accessors {
			if err := s.transitionAll(ctx, accessor(e), lifecycle.TransitionEmploy, date); err != nil {
				return err
			}
		}
		return nil
	}
}

// transitionAll applies tr to each eligible member in iteration order,
// skipping members the cascade scope has already visited. Ineligible members
// are skipped, not failed: a cascade widens a transition, it does not police
// the roster.
func (s *TransitionService) transitionAll(ctx context.Context, members []lifecycle.Entity, tr lifecycle.Transition, date time.Time) error {
	for _, m := range members {
		if !eligibleFor(m, tr) {
			continue
		}
		if !s.firstVisit(ctx, m) {
			continue
		}
		if err := s.Transition(m, tr).OnDate(date).Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// firstVisit consults the ambient cascade scope; outside a pipeline call
// there is no scope and every visit counts as first.
func (s *TransitionService) firstVisit(ctx context.Context, e lifecycle.Entity) bool {
	scope, ok := scopeFrom(ctx)
	if !ok {
		return true
	}
	return scope.visit(lifecycle.KeyOf(e))
}

// eligibleFor is the cascade-side filter: does applying tr to e make sense
// right now. Guards still run inside the spawned pipeline; this only keeps
// cascades from failing on members already in the target state.
func eligibleFor(e lifecycle.Entity, tr lifecycle.Transition) bool {
	switch tr {
	case lifecycle.TransitionEmploy:
		emp, ok := e.(lifecycle.Employable)
		return ok && !emp.IsEmployed() && !emp.HasFutureEmployment()
	case lifecycle.TransitionSuspend:
		sus, ok := e.(lifecycle.Suspendable)
		return ok && e.Status() == lifecycle.StatusEmployed && !sus.IsSuspended()
	case lifecycle.TransitionReinstate:
		_, ok := e.(lifecycle.Reinstatable)
		return ok && e.Status() == lifecycle.StatusSuspended
	case lifecycle.TransitionRetire:
		ret, ok := e.(lifecycle.Retirable)
		return ok && !ret.IsRetired() && (e.Status().CountsAsEmployed() || e.Status() == lifecycle.StatusReleased)
	case lifecycle.TransitionRelease:
		_, ok := e.(lifecycle.Releasable)
		return ok && e.Status().CountsAsEmployed()
	case lifecycle.TransitionInjure:
		_, ok := e.(lifecycle.Injurable)
		return ok && e.Status() == lifecycle.StatusEmployed
	default:
		return false
	}
}
