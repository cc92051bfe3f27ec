package lifecycle

import "github.com/google/uuid"

// Capability interfaces. Transition logic type-asserts against these before
// touching a predicate or relationship; no code path dereferences a
// relationship the entity type does not declare.

type Employable interface {
	Entity
	IsEmployed() bool
	HasFutureEmployment() bool
	EnsureCanBeEmployed() error
}

type Suspendable interface {
	Entity
	IsSuspended() bool
	EnsureCanBeSuspended() error
}

type Reinstatable interface {
	Entity
	EnsureCanBeReinstated() error
}

type Injurable interface {
	Entity
	IsInjured() bool
	EnsureCanBeInjured() error
}

type Retirable interface {
	Entity
	IsRetired() bool
	EnsureCanBeRetired() error
}

type Releasable interface {
	Entity
	IsReleased() bool
	EnsureCanBeReleased() error
}

type HasManagers interface {
	Entity
	CurrentManagers() []Entity
}

type HasWrestlers interface {
	Entity
	CurrentWrestlers() []Entity
}

type HasTagTeams interface {
	Entity
	CurrentTagTeams() []Entity
}

// StableMember is implemented by entities that can belong to a stable.
type StableMember interface {
	Entity
	CurrentStableID() (uuid.UUID, bool)
}
