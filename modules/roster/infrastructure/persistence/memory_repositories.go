package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/manager"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/referee"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// memStateRepository implements lifecycle.StateRepository against a
// MemoryStore; the typed repositories embed it.
type memStateRepository struct {
	store *MemoryStore
}

func (r memStateRepository) CreateEmployment(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodEmployment, date, notes)
}

func (r memStateRepository) CreateSuspension(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodSuspension, date, notes)
}

func (r memStateRepository) CreateRelease(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodRelease, date, notes)
}

func (r memStateRepository) CreateRetirement(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodRetirement, date, notes)
}

func (r memStateRepository) CreateInjury(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodInjury, date, notes)
}

func (r memStateRepository) CreateReinstatement(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.store.applyState(e, PeriodReinstatement, date, notes)
}

func (r memStateRepository) EndRetirement(ctx context.Context, e lifecycle.Entity, date time.Time) error {
	return r.store.endRetirement(e, date)
}

func (r memStateRepository) Update(ctx context.Context, e lifecycle.Entity, changes lifecycle.EntityChanges) error {
	if changes.Name != nil {
		return r.store.rename(e, *changes.Name)
	}
	return nil
}

type MemoryWrestlerRepository struct {
	memStateRepository
}

func NewMemoryWrestlerRepository(store *MemoryStore) wrestler.Repository {
	return &MemoryWrestlerRepository{memStateRepository{store: store}}
}

func (r *MemoryWrestlerRepository) GetByID(ctx context.Context, id uuid.UUID) (*wrestler.Wrestler, error) {
	e, ok := r.store.Get(lifecycle.Key{Type: lifecycle.TypeWrestler, ID: id})
	if !ok {
		return nil, ErrNotFound.WithDetails("wrestler %s", id)
	}
	w := e.(*wrestler.Wrestler)
	return wrestler.Hydrate(
		w.ID(), w.Name(), w.Hometown(), w.Status(),
		r.store.resolveMembers(w.CurrentManagers()), stableIDPtr(w),
	), nil
}

func (r *MemoryWrestlerRepository) GetAll(ctx context.Context) ([]*wrestler.Wrestler, error) {
	entities := r.store.All(lifecycle.TypeWrestler)
	out := make([]*wrestler.Wrestler, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*wrestler.Wrestler))
	}
	return out, nil
}

func (r *MemoryWrestlerRepository) Create(ctx context.Context, w *wrestler.Wrestler) (*wrestler.Wrestler, error) {
	r.store.Put(w)
	return w, nil
}

type MemoryManagerRepository struct {
	memStateRepository
}

func NewMemoryManagerRepository(store *MemoryStore) manager.Repository {
	return &MemoryManagerRepository{memStateRepository{store: store}}
}

func (r *MemoryManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	e, ok := r.store.Get(lifecycle.Key{Type: lifecycle.TypeManager, ID: id})
	if !ok {
		return nil, ErrNotFound.WithDetails("manager %s", id)
	}
	return e.(*manager.Manager), nil
}

func (r *MemoryManagerRepository) GetAll(ctx context.Context) ([]*manager.Manager, error) {
	entities := r.store.All(lifecycle.TypeManager)
	out := make([]*manager.Manager, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*manager.Manager))
	}
	return out, nil
}

func (r *MemoryManagerRepository) Create(ctx context.Context, m *manager.Manager) (*manager.Manager, error) {
	r.store.Put(m)
	return m, nil
}

type MemoryRefereeRepository struct {
	memStateRepository
}

func NewMemoryRefereeRepository(store *MemoryStore) referee.Repository {
	return &MemoryRefereeRepository{memStateRepository{store: store}}
}

func (r *MemoryRefereeRepository) GetByID(ctx context.Context, id uuid.UUID) (*referee.Referee, error) {
	e, ok := r.store.Get(lifecycle.Key{Type: lifecycle.TypeReferee, ID: id})
	if !ok {
		return nil, ErrNotFound.WithDetails("referee %s", id)
	}
	return e.(*referee.Referee), nil
}

func (r *MemoryRefereeRepository) GetAll(ctx context.Context) ([]*referee.Referee, error) {
	entities := r.store.All(lifecycle.TypeReferee)
	out := make([]*referee.Referee, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*referee.Referee))
	}
	return out, nil
}

func (r *MemoryRefereeRepository) Create(ctx context.Context, ref *referee.Referee) (*referee.Referee, error) {
	r.store.Put(ref)
	return ref, nil
}

type MemoryTagTeamRepository struct {
	memStateRepository
}

func NewMemoryTagTeamRepository(store *MemoryStore) tagteam.Repository {
	return &MemoryTagTeamRepository{memStateRepository{store: store}}
}

func (r *MemoryTagTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*tagteam.TagTeam, error) {
	e, ok := r.store.Get(lifecycle.Key{Type: lifecycle.TypeTagTeam, ID: id})
	if !ok {
		return nil, ErrNotFound.WithDetails("tag team %s", id)
	}
	t := e.(*tagteam.TagTeam)
	return tagteam.Hydrate(
		t.ID(), t.Name(), t.Status(),
		r.store.resolveMembers(t.CurrentWrestlers()),
		r.store.resolveMembers(t.CurrentManagers()),
		stableIDPtr(t),
	), nil
}

func (r *MemoryTagTeamRepository) GetAll(ctx context.Context) ([]*tagteam.TagTeam, error) {
	entities := r.store.All(lifecycle.TypeTagTeam)
	out := make([]*tagteam.TagTeam, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*tagteam.TagTeam))
	}
	return out, nil
}

func (r *MemoryTagTeamRepository) Create(ctx context.Context, t *tagteam.TagTeam) (*tagteam.TagTeam, error) {
	r.store.Put(t)
	return t, nil
}

type MemoryStableRepository struct {
	memStateRepository
}

func NewMemoryStableRepository(store *MemoryStore) stable.Repository {
	return &MemoryStableRepository{memStateRepository{store: store}}
}

func (r *MemoryStableRepository) GetByID(ctx context.Context, id uuid.UUID) (*stable.Stable, error) {
	e, ok := r.store.Get(lifecycle.Key{Type: lifecycle.TypeStable, ID: id})
	if !ok {
		return nil, ErrNotFound.WithDetails("stable %s", id)
	}
	s := e.(*stable.Stable)
	return stable.Hydrate(
		s.ID(), s.Name(), s.Status(),
		r.store.resolveMembers(s.CurrentWrestlers()),
		r.store.resolveMembers(s.CurrentTagTeams()),
		r.store.resolveMembers(s.CurrentManagers()),
	), nil
}

func (r *MemoryStableRepository) GetAll(ctx context.Context) ([]*stable.Stable, error) {
	entities := r.store.All(lifecycle.TypeStable)
	out := make([]*stable.Stable, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*stable.Stable))
	}
	return out, nil
}

func (r *MemoryStableRepository) Create(ctx context.Context, s *stable.Stable) (*stable.Stable, error) {
	r.store.Put(s)
	return s, nil
}

type memberKind int

const (
	kindWrestler memberKind = iota
	kindTagTeam
	kindManager
)

func (r *MemoryStableRepository) AddWrestler(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindWrestler, true)
}

func (r *MemoryStableRepository) RemoveWrestler(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindWrestler, false)
}

func (r *MemoryStableRepository) AddTagTeam(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindTagTeam, true)
}

func (r *MemoryStableRepository) RemoveTagTeam(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindTagTeam, false)
}

func (r *MemoryStableRepository) AddManager(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindManager, true)
}

func (r *MemoryStableRepository) RemoveManager(ctx context.Context, st lifecycle.Entity, member lifecycle.Entity, date time.Time) error {
	return r.mutateMembership(st, member, kindManager, false)
}

func (r *MemoryStableRepository) mutateMembership(st lifecycle.Entity, member lifecycle.Entity, kind memberKind, add bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stKey := lifecycle.KeyOf(st)
	stored, ok := r.store.entities[stKey]
	if !ok {
		return ErrNotFound.WithDetails("%s", stKey)
	}
	current, ok := stored.(*stable.Stable)
	if !ok {
		return ErrUnknownEntityType.WithDetails("%T is not a stable", stored)
	}

	wrestlers := current.CurrentWrestlers()
	tagTeams := current.CurrentTagTeams()
	managers := current.CurrentManagers()

	switch kind {
	case kindWrestler:
		wrestlers = mutateMemberList(wrestlers, member, add)
	case kindTagTeam:
		tagTeams = mutateMemberList(tagTeams, member, add)
	case kindManager:
		managers = mutateMemberList(managers, member, add)
	}

	r.store.entities[stKey] = stable.Hydrate(
		current.ID(), current.Name(), current.Status(), wrestlers, tagTeams, managers,
	)

	// Wrestlers and tag teams track their stable; managers do not.
	if kind == kindManager {
		return nil
	}
	memberKey := lifecycle.KeyOf(member)
	storedMember, ok := r.store.entities[memberKey]
	if !ok {
		return nil
	}
	var stableID *uuid.UUID
	if add {
		id := current.ID()
		stableID = &id
	}
	updated, err := withStableID(storedMember, stableID)
	if err != nil {
		return err
	}
	r.store.entities[memberKey] = updated
	return nil
}

func mutateMemberList(members []lifecycle.Entity, member lifecycle.Entity, add bool) []lifecycle.Entity {
	key := lifecycle.KeyOf(member)
	out := make([]lifecycle.Entity, 0, len(members)+1)
	for _, m := range members {
		if lifecycle.KeyOf(m) != key {
			out = append(out, m)
		}
	}
	if add {
		out = append(out, member)
	}
	return out
}
