package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// PeriodKind names the state-period sub-records the orchestration layer
// creates. Entity primary records are never created or deleted here; only
// periods and membership edges.
type PeriodKind string

const (
	PeriodEmployment    PeriodKind = "employment"
	PeriodSuspension    PeriodKind = "suspension"
	PeriodInjury        PeriodKind = "injury"
	PeriodRetirement    PeriodKind = "retirement"
	PeriodRelease       PeriodKind = "release"
	PeriodReinstatement PeriodKind = "reinstatement"
)

type Period struct {
	Entity lifecycle.Key
	Kind   PeriodKind
	Start  time.Time
	End    time.Time
	Notes  string
}

// MemoryStore backs the in-memory repositories and transactor. Aggregates are
// treated as immutable snapshots: every state change replaces the stored
// entry with a re-hydrated copy, which is what makes snapshot rollback safe.
type MemoryStore struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	entities map[lifecycle.Key]lifecycle.Entity
	periods  []Period
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:    clock,
		entities: make(map[lifecycle.Key]lifecycle.Entity),
	}
}

func (s *MemoryStore) Put(e lifecycle.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[lifecycle.KeyOf(e)] = e
}

func (s *MemoryStore) Get(k lifecycle.Key) (lifecycle.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[k]
	return e, ok
}

func (s *MemoryStore) All(t lifecycle.EntityType) []lifecycle.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]lifecycle.Entity, 0)
	for k, e := range s.entities {
		if k.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Periods returns a copy of the period log for an entity, oldest first.
func (s *MemoryStore) Periods(k lifecycle.Key) []Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Period, 0)
	for _, p := range s.periods {
		if p.Entity == k {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) openPeriod(k lifecycle.Key, kind PeriodKind, start time.Time, notes string) {
	s.periods = append(s.periods, Period{Entity: k, Kind: kind, Start: start, Notes: notes})
}

func (s *MemoryStore) closePeriod(k lifecycle.Key, kind PeriodKind, end time.Time) (bool, error) {
	for i := len(s.periods) - 1; i >= 0; i-- {
		p := &s.periods[i]
		if p.Entity == k && p.Kind == kind && p.End.IsZero() {
			if err := lifecycle.ValidateRange(p.Start, end); err != nil {
				return false, err
			}
			p.End = end
			return true, nil
		}
	}
	return false, nil
}

// applyState opens a period and replaces the stored aggregate with one
// carrying the new status.
func (s *MemoryStore) applyState(e lifecycle.Entity, kind PeriodKind, date time.Time, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := lifecycle.KeyOf(e)
	current, ok := s.entities[k]
	if !ok {
		return ErrNotFound.WithDetails("%s", k)
	}

	status, err := statusAfter(kind, date, s.clock.Now())
	if err != nil {
		return err
	}
	s.openPeriod(k, kind, date, notes)
	next, err := withStatus(current, status)
	if err != nil {
		return err
	}
	s.entities[k] = next
	return nil
}

func (s *MemoryStore) endRetirement(e lifecycle.Entity, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := lifecycle.KeyOf(e)
	closed, err := s.closePeriod(k, PeriodRetirement, date)
	if err != nil {
		return err
	}
	if !closed {
		return ErrNotFound.WithDetails("open retirement for %s", k)
	}
	return nil
}

func (s *MemoryStore) rename(e lifecycle.Entity, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := lifecycle.KeyOf(e)
	current, ok := s.entities[k]
	if !ok {
		return ErrNotFound.WithDetails("%s", k)
	}
	next, err := withName(current, name)
	if err != nil {
		return err
	}
	s.entities[k] = next
	return nil
}

func statusAfter(kind PeriodKind, date, now time.Time) (lifecycle.Status, error) {
	switch kind {
	case PeriodEmployment:
		if date.After(now) {
			return lifecycle.StatusFutureEmployment, nil
		}
		return lifecycle.StatusEmployed, nil
	case PeriodSuspension:
		return lifecycle.StatusSuspended, nil
	case PeriodInjury:
		return lifecycle.StatusInjured, nil
	case PeriodRetirement:
		return lifecycle.StatusRetired, nil
	case PeriodRelease:
		return lifecycle.StatusReleased, nil
	case PeriodReinstatement:
		return lifecycle.StatusEmployed, nil
	default:
		return "", ErrUnknownPeriodKind.WithDetails("%q", string(kind))
	}
}

// snapshot supports the transactor's rollback. Entities are immutable
// snapshots, so a shallow copy of the map is enough.
func (s *MemoryStore) snapshot() (map[lifecycle.Key]lifecycle.Entity, []Period) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entities := make(map[lifecycle.Key]lifecycle.Entity, len(s.entities))
	for k, e := range s.entities {
		entities[k] = e
	}
	periods := make([]Period, len(s.periods))
	copy(periods, s.periods)
	return entities, periods
}

func (s *MemoryStore) restore(entities map[lifecycle.Key]lifecycle.Entity, periods []Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = entities
	s.periods = periods
}

type memTxKey struct{}

// MemoryTransactor implements the ambient transaction collaborator over a
// MemoryStore with snapshot-and-restore semantics. Nested InTx calls
// participate in the ambient transaction.
type MemoryTransactor struct {
	store *MemoryStore
}

func NewMemoryTransactor(store *MemoryStore) *MemoryTransactor {
	return &MemoryTransactor{store: store}
}

func (t *MemoryTransactor) InTx(ctx context.Context, fn func(context.Context) error) error {
	if ambient, ok := ctx.Value(memTxKey{}).(bool); ok && ambient {
		return fn(ctx)
	}
	entities, periods := t.store.snapshot()
	txCtx := context.WithValue(ctx, memTxKey{}, true)
	if err := fn(txCtx); err != nil {
		t.store.restore(entities, periods)
		return err
	}
	return nil
}
