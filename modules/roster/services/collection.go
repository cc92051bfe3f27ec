package services

import (
	"context"
	"time"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
)

// CollectionManager builds a filtered view over a homogeneous or mixed entity
// collection and runs batch transitions over it. Filters are predicates
// applied in registration order with AND semantics; the source slice is never
// mutated and Get is re-computable.
type CollectionManager struct {
	svc     *TransitionService
	source  []lifecycle.Entity
	filters []func(lifecycle.Entity) bool
	date    time.Time
	err     error
}

func (s *TransitionService) Collection(entities []lifecycle.Entity) *CollectionManager {
	return &CollectionManager{svc: s, source: entities}
}

func (c *CollectionManager) OnDate(date time.Time) *CollectionManager {
	c.date = date
	return c
}

// fail records the first builder error; terminal calls surface it before
// doing any work, so a bad status literal is caught at the call site that
// passed it, not at Get time.
func (c *CollectionManager) fail(err error) *CollectionManager {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *CollectionManager) FilterBy(pred func(lifecycle.Entity) bool) *CollectionManager {
	c.filters = append(c.filters, pred)
	return c
}

func (c *CollectionManager) FilterByType(types ...lifecycle.EntityType) *CollectionManager {
	allowed := make(map[lifecycle.EntityType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return c.FilterBy(func(e lifecycle.Entity) bool {
		_, ok := allowed[e.Type()]
		return ok
	})
}

func (c *CollectionManager) FilterByEmploymentStatus(status lifecycle.Status) *CollectionManager {
	switch status {
	case lifecycle.StatusEmployed:
		return c.FilterBy(func(e lifecycle.Entity) bool {
			emp, ok := e.(lifecycle.Employable)
			return ok && emp.IsEmployed()
		})
	case lifecycle.StatusFutureEmployment:
		return c.FilterBy(func(e lifecycle.Entity) bool {
			emp, ok := e.(lifecycle.Employable)
			return ok && emp.HasFutureEmployment()
		})
	case lifecycle.StatusUnemployed, lifecycle.StatusReleased:
		return c.FilterBy(func(e lifecycle.Entity) bool {
			return e.Status() == status
		})
	default:
		return c.fail(lifecycle.ErrInvalidStatus.WithDetails("employment filter got %q", string(status)))
	}
}

func (c *CollectionManager) FilterBySuspensionStatus(status lifecycle.Status) *CollectionManager {
	if status != lifecycle.StatusSuspended {
		return c.fail(lifecycle.ErrInvalidStatus.WithDetails("suspension filter got %q", string(status)))
	}
	return c.FilterBy(func(e lifecycle.Entity) bool {
		sus, ok := e.(lifecycle.Suspendable)
		return ok && sus.IsSuspended()
	})
}

func (c *CollectionManager) FilterByInjuryStatus(status lifecycle.Status) *CollectionManager {
	if status != lifecycle.StatusInjured {
		return c.fail(lifecycle.ErrInvalidStatus.WithDetails("injury filter got %q", string(status)))
	}
	return c.FilterBy(func(e lifecycle.Entity) bool {
		inj, ok := e.(lifecycle.Injurable)
		return ok && inj.IsInjured()
	})
}

func (c *CollectionManager) FilterByRetirementStatus(status lifecycle.Status) *CollectionManager {
	if status != lifecycle.StatusRetired {
		return c.fail(lifecycle.ErrInvalidStatus.WithDetails("retirement filter got %q", string(status)))
	}
	return c.FilterBy(func(e lifecycle.Entity) bool {
		ret, ok := e.(lifecycle.Retirable)
		return ok && ret.IsRetired()
	})
}

func (c *CollectionManager) FilterByAvailability(available bool) *CollectionManager {
	return c.FilterBy(func(e lifecycle.Entity) bool {
		return isAvailable(e) == available
	})
}

// isAvailable composes employed, not suspended, not injured, not retired,
// short-circuiting on the first failing applicable check. An entity lacking a
// capability passes that sub-check: a non-suspendable tag team is never
// excluded for suspension.
func isAvailable(e lifecycle.Entity) bool {
	if emp, ok := e.(lifecycle.Employable); ok && !emp.IsEmployed() {
		return false
	}
	if sus, ok := e.(lifecycle.Suspendable); ok && sus.IsSuspended() {
		return false
	}
	if inj, ok := e.(lifecycle.Injurable); ok && inj.IsInjured() {
		return false
	}
	if ret, ok := e.(lifecycle.Retirable); ok && ret.IsRetired() {
		return false
	}
	return true
}

// Get applies every filter in registration order and returns the surviving
// entities in the collection's iteration order.
func (c *CollectionManager) Get() ([]lifecycle.Entity, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]lifecycle.Entity, 0, len(c.source))
	for _, e := range c.source {
		keep := true
		for _, pred := range c.filters {
			if !pred(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *CollectionManager) GroupByStatus() (map[lifecycle.Status][]lifecycle.Entity, error) {
	filtered, err := c.Get()
	if err != nil {
		return nil, err
	}
	buckets := make(map[lifecycle.Status][]lifecycle.Entity)
	for _, e := range filtered {
		buckets[e.Status()] = append(buckets[e.Status()], e)
	}
	return buckets, nil
}

type Statistics struct {
	Total      int
	Employed   int
	Unemployed int
	Suspended  int
	Injured    int
	Retired    int
	Available  int
}

func (c *CollectionManager) GetStatistics() (Statistics, error) {
	filtered, err := c.Get()
	if err != nil {
		return Statistics{}, err
	}
	stats := Statistics{Total: len(filtered)}
	for _, e := range filtered {
		switch e.Status() {
		case lifecycle.StatusEmployed:
			stats.Employed++
		case lifecycle.StatusUnemployed, lifecycle.StatusFutureEmployment, lifecycle.StatusReleased:
			stats.Unemployed++
		case lifecycle.StatusSuspended:
			stats.Suspended++
		case lifecycle.StatusInjured:
			stats.Injured++
		case lifecycle.StatusRetired:
			stats.Retired++
		}
		if isAvailable(e) {
			stats.Available++
		}
	}
	return stats, nil
}

// BatchResult aggregates a batch run: one pipeline per filtered entity,
// sequentially, in collection order.
type BatchResult struct {
	Attempted int
	Applied   []lifecycle.Key
	Skipped   []lifecycle.Key
}

func (c *CollectionManager) BatchEmploy(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionEmploy, false)
}

func (c *CollectionManager) BatchSuspend(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionSuspend, false)
}

func (c *CollectionManager) BatchRetire(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionRetire, false)
}

func (c *CollectionManager) BatchRelease(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionRelease, false)
}

func (c *CollectionManager) BatchReinstate(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionReinstate, false)
}

// BatchInjure skips entities without injury capability instead of failing;
// everything else about the batch is the same.
func (c *CollectionManager) BatchInjure(ctx context.Context) (*BatchResult, error) {
	return c.batch(ctx, lifecycle.TransitionInjure, true)
}

func (c *CollectionManager) batch(ctx context.Context, tr lifecycle.Transition, skipIncapable bool) (*BatchResult, error) {
	filtered, err := c.Get()
	if err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*BatchResult, error) {
		result := &BatchResult{Attempted: len(filtered)}
		for _, e := range filtered {
			if skipIncapable && !supportsTransition(e, tr) {
				result.Skipped = append(result.Skipped, lifecycle.KeyOf(e))
				continue
			}
			if err := c.svc.Transition(e, tr).OnDate(c.date).Execute(txCtx); err != nil {
				return nil, err
			}
			result.Applied = append(result.Applied, lifecycle.KeyOf(e))
		}
		return result, nil
	})
}

func supportsTransition(e lifecycle.Entity, tr lifecycle.Transition) bool {
	switch tr {
	case lifecycle.TransitionEmploy:
		_, ok := e.(lifecycle.Employable)
		return ok
	case lifecycle.TransitionSuspend:
		_, ok := e.(lifecycle.Suspendable)
		return ok
	case lifecycle.TransitionInjure:
		_, ok := e.(lifecycle.Injurable)
		return ok
	case lifecycle.TransitionRetire:
		_, ok := e.(lifecycle.Retirable)
		return ok
	case lifecycle.TransitionRelease:
		_, ok := e.(lifecycle.Releasable)
		return ok
	case lifecycle.TransitionReinstate:
		_, ok := e.(lifecycle.Reinstatable)
		return ok
	default:
		return false
	}
}
