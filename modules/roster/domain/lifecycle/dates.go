package lifecycle

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// ResolveDate returns the effective date for an operation: the explicit value
// when one was given, the clock's now otherwise. Effective dates are never
// inferred from unrelated fields.
func ResolveDate(clock clockwork.Clock, date time.Time) time.Time {
	if date.IsZero() {
		return clock.Now()
	}
	return date
}

// ValidateRange checks that a period's end does not precede its start. A zero
// end means the period is still open.
func ValidateRange(start, end time.Time) error {
	if end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return ErrInvalidDateRange.WithDetails("end %s precedes start %s", end, start)
	}
	return nil
}
