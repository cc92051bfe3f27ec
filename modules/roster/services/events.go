package services

import (
	"time"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// TransitionApplied is published after a transition's repository mutation,
// inside the ambient transaction. Listeners reacting with out-of-transaction
// effects (notifications, projections) are the reason the action pipeline
// keeps compensating actions at all.
type TransitionApplied struct {
	Entity     lifecycle.Entity
	Transition lifecycle.Transition
	Date       time.Time
	Notes      string
}
