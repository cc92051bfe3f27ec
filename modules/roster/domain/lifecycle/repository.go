package lifecycle

import (
	"context"
	"time"
)

// EntityChanges carries rename-style edits applied through Update.
type EntityChanges struct {
	Name *string
}

// StateRepository is the per-entity-type persistence contract the transition
// pipeline resolves through the registry. Each Create* call opens a new state
// period for the entity; ending any incompatible prior period is the
// pipeline's job, not the repository's.
type StateRepository interface {
	CreateEmployment(ctx context.Context, e Entity, date time.Time, notes string) error
	CreateSuspension(ctx context.Context, e Entity, date time.Time, notes string) error
	CreateRelease(ctx context.Context, e Entity, date time.Time, notes string) error
	CreateRetirement(ctx context.Context, e Entity, date time.Time, notes string) error
	CreateInjury(ctx context.Context, e Entity, date time.Time, notes string) error
	CreateReinstatement(ctx context.Context, e Entity, date time.Time, notes string) error
	EndRetirement(ctx context.Context, e Entity, date time.Time) error
	Update(ctx context.Context, e Entity, changes EntityChanges) error
}

// MembershipRepository mutates stable membership edges.
type MembershipRepository interface {
	AddWrestler(ctx context.Context, stable Entity, member Entity, date time.Time) error
	RemoveWrestler(ctx context.Context, stable Entity, member Entity, date time.Time) error
	AddTagTeam(ctx context.Context, stable Entity, member Entity, date time.Time) error
	RemoveTagTeam(ctx context.Context, stable Entity, member Entity, date time.Time) error
	AddManager(ctx context.Context, stable Entity, member Entity, date time.Time) error
	RemoveManager(ctx context.Context, stable Entity, member Entity, date time.Time) error
}

// ValidationStrategy vetoes a transition by returning a non-nil error.
type ValidationStrategy func(e Entity, tr Transition) error

// CascadeStrategy reacts to an applied transition by spawning further
// transition pipelines. Strategies never mutate the entity they receive.
type CascadeStrategy func(ctx context.Context, e Entity, date time.Time, tr Transition) error
