package lifecycle

// Shared guard rules. Aggregates delegate their EnsureCanBe* methods here so
// the rules live in one place; an aggregate that needs a stricter rule
// overrides locally.

func EnsureCanBeEmployed(e Entity) error {
	if e.Status().CountsAsEmployed() {
		return GuardError(e, TransitionEmploy, "already employed")
	}
	// Unemployed, future-dated, retired and released entities can all
	// (re-)open an employment.
	return nil
}

func EnsureCanBeSuspended(e Entity) error {
	switch e.Status() {
	case StatusEmployed:
		return nil
	case StatusSuspended:
		return GuardError(e, TransitionSuspend, "already suspended")
	case StatusInjured:
		return GuardError(e, TransitionSuspend, "currently injured")
	default:
		return GuardError(e, TransitionSuspend, "not currently employed")
	}
}

func EnsureCanBeInjured(e Entity) error {
	switch e.Status() {
	case StatusEmployed:
		return nil
	case StatusInjured:
		return GuardError(e, TransitionInjure, "already injured")
	case StatusSuspended:
		return GuardError(e, TransitionInjure, "currently suspended")
	default:
		return GuardError(e, TransitionInjure, "not currently employed")
	}
}

func EnsureCanBeRetired(e Entity) error {
	switch {
	case e.Status() == StatusRetired:
		return GuardError(e, TransitionRetire, "already retired")
	case e.Status().CountsAsEmployed(), e.Status() == StatusReleased:
		return nil
	default:
		return GuardError(e, TransitionRetire, "has no employment to retire from")
	}
}

func EnsureCanBeReleased(e Entity) error {
	if e.Status().CountsAsEmployed() {
		return nil
	}
	return GuardError(e, TransitionRelease, "not currently employed")
}

func EnsureCanBeReinstated(e Entity) error {
	if e.Status() == StatusSuspended {
		return nil
	}
	return GuardError(e, TransitionReinstate, "not currently suspended")
}
