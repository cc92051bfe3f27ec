package lifecycle

import (
	"github.com/ringside-io/roster/pkg/serrors"
)

var (
	ErrUnknownTransition  = serrors.NewError("CONFIG_UNKNOWN_TRANSITION", "unknown transition", "")
	ErrNoRepository       = serrors.NewError("CONFIG_NO_REPOSITORY", "no repository registered for entity type", "")
	ErrCascadeDepth       = serrors.NewError("CONFIG_CASCADE_DEPTH", "cascade recursion depth exceeded", "")
	ErrGuardFailed        = serrors.NewError("VALIDATION_GUARD_FAILED", "transition not allowed", "")
	ErrInvalidStatus      = serrors.NewError("VALIDATION_INVALID_STATUS", "unsupported status literal", "")
	ErrInvalidDateRange   = serrors.NewError("VALIDATION_DATE_RANGE", "invalid date range", "")
	ErrCompensationFailed = serrors.NewError("COMPENSATION_FAILED", "compensating action failed", "")
)

func GuardError(e Entity, tr Transition, reason string) error {
	return ErrGuardFailed.WithDetails("%s cannot %s: %s", KeyOf(e), tr, reason)
}
