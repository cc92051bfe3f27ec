package lifecycle

import (
	"context"
	"time"
)

type Transition string

const (
	TransitionEmploy    Transition = "employ"
	TransitionSuspend   Transition = "suspend"
	TransitionRelease   Transition = "release"
	TransitionRetire    Transition = "retire"
	TransitionInjure    Transition = "injure"
	TransitionReinstate Transition = "reinstate"
)

// transitionSpec ties a transition to its default guard, its repository
// mutation, and the prior state it must silently close first.
type transitionSpec struct {
	guard    func(Entity) error
	endPrior func(StateRepository, context.Context, Entity, time.Time) error
	apply    func(StateRepository, context.Context, Entity, time.Time, string) error
}

var transitionSpecs = map[Transition]transitionSpec{
	TransitionEmploy: {
		guard: func(e Entity) error {
			emp, ok := e.(Employable)
			if !ok {
				return GuardError(e, TransitionEmploy, "entity type cannot be employed")
			}
			return emp.EnsureCanBeEmployed()
		},
		// Employing a retired entity closes the retirement first; if that
		// fails, employment is never opened.
		endPrior: func(r StateRepository, ctx context.Context, e Entity, date time.Time) error {
			ret, ok := e.(Retirable)
			if !ok || !ret.IsRetired() {
				return nil
			}
			return r.EndRetirement(ctx, e, date)
		},
		apply: StateRepository.CreateEmployment,
	},
	TransitionSuspend: {
		guard: func(e Entity) error {
			s, ok := e.(Suspendable)
			if !ok {
				return GuardError(e, TransitionSuspend, "entity type cannot be suspended")
			}
			return s.EnsureCanBeSuspended()
		},
		apply: StateRepository.CreateSuspension,
	},
	TransitionRelease: {
		guard: func(e Entity) error {
			rel, ok := e.(Releasable)
			if !ok {
				return GuardError(e, TransitionRelease, "entity type cannot be released")
			}
			return rel.EnsureCanBeReleased()
		},
		apply: StateRepository.CreateRelease,
	},
	TransitionRetire: {
		guard: func(e Entity) error {
			ret, ok := e.(Retirable)
			if !ok {
				return GuardError(e, TransitionRetire, "entity type cannot be retired")
			}
			return ret.EnsureCanBeRetired()
		},
		apply: StateRepository.CreateRetirement,
	},
	TransitionInjure: {
		guard: func(e Entity) error {
			inj, ok := e.(Injurable)
			if !ok {
				return GuardError(e, TransitionInjure, "entity type cannot be injured")
			}
			return inj.EnsureCanBeInjured()
		},
		apply: StateRepository.CreateInjury,
	},
	TransitionReinstate: {
		guard: func(e Entity) error {
			rei, ok := e.(Reinstatable)
			if !ok {
				return GuardError(e, TransitionReinstate, "entity type cannot be reinstated")
			}
			return rei.EnsureCanBeReinstated()
		},
		apply: StateRepository.CreateReinstatement,
	},
}

func (t Transition) Valid() bool {
	_, ok := transitionSpecs[t]
	return ok
}

// DefaultGuard runs the capability-specific guard for the transition.
func (t Transition) DefaultGuard(e Entity) error {
	spec, ok := transitionSpecs[t]
	if !ok {
		return ErrUnknownTransition.WithDetails("%q", string(t))
	}
	return spec.guard(e)
}

// EndPriorState closes any prior state period incompatible with the
// transition. A no-op for transitions without an ending rule.
func (t Transition) EndPriorState(ctx context.Context, r StateRepository, e Entity, date time.Time) error {
	spec, ok := transitionSpecs[t]
	if !ok {
		return ErrUnknownTransition.WithDetails("%q", string(t))
	}
	if spec.endPrior == nil {
		return nil
	}
	return spec.endPrior(r, ctx, e, date)
}

// Apply performs the transition's core repository mutation.
func (t Transition) Apply(ctx context.Context, r StateRepository, e Entity, date time.Time, notes string) error {
	spec, ok := transitionSpecs[t]
	if !ok {
		return ErrUnknownTransition.WithDetails("%q", string(t))
	}
	return spec.apply(r, ctx, e, date, notes)
}
