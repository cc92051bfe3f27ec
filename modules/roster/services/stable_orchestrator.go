package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
)

// StableService composes multi-step stable workflows — merges, splits, member
// transfers — as sequences of repository calls and transition pipelines
// inside one ambient transaction.
type StableService struct {
	transitions *TransitionService
	stables     stable.Repository
	log         logrus.FieldLogger
}

func NewStableService(transitions *TransitionService, stables stable.Repository, log logrus.FieldLogger) *StableService {
	return &StableService{
		transitions: transitions,
		stables:     stables,
		log:         log,
	}
}

// Criteria selects members for criteria-driven transfers.
type Criteria struct {
	Types         []lifecycle.EntityType
	Statuses      []lifecycle.Status
	AvailableOnly bool
}

// moveMember re-points one membership edge via remove-then-add. Only member
// kinds a stable actually holds can move.
func (s *StableService) moveMember(ctx context.Context, from, to *stable.Stable, m lifecycle.Entity, date time.Time) error {
	switch m.Type() {
	case lifecycle.TypeWrestler:
		if err := s.stables.RemoveWrestler(ctx, from, m, date); err != nil {
			return err
		}
		return s.stables.AddWrestler(ctx, to, m, date)
	case lifecycle.TypeTagTeam:
		if err := s.stables.RemoveTagTeam(ctx, from, m, date); err != nil {
			return err
		}
		return s.stables.AddTagTeam(ctx, to, m, date)
	case lifecycle.TypeManager:
		if err := s.stables.RemoveManager(ctx, from, m, date); err != nil {
			return err
		}
		return s.stables.AddManager(ctx, to, m, date)
	default:
		return lifecycle.ErrGuardFailed.WithDetails("%s is not a transferable member kind", lifecycle.KeyOf(m))
	}
}

func (s *StableService) moveMembers(ctx context.Context, from, to *stable.Stable, members []lifecycle.Entity, date time.Time) error {
	for _, m := range members {
		if err := s.moveMember(ctx, from, to, m, date); err != nil {
			return err
		}
	}
	return nil
}

// transferSet is the queue of member-transfer operations shared by the split
// and transfer builders. Each op runs against the from/to pair at execute
// time, after the target stable exists.
type transferSet struct {
	ops []func(ctx context.Context, from, to *stable.Stable, date time.Time) error
}

func (t *transferSet) queue(op func(ctx context.Context, from, to *stable.Stable, date time.Time) error) {
	t.ops = append(t.ops, op)
}

func (t *transferSet) run(ctx context.Context, from, to *stable.Stable, date time.Time) error {
	for _, op := range t.ops {
		if err := op(ctx, from, to, date); err != nil {
			return err
		}
	}
	return nil
}

// cascadeSet holds post-transfer cascades, run after every queued transfer.
type cascadeSet struct {
	ops []func(ctx context.Context, date time.Time) error
}

func (c *cascadeSet) queue(op func(ctx context.Context, date time.Time) error) {
	c.ops = append(c.ops, op)
}

func (c *cascadeSet) run(ctx context.Context, date time.Time) error {
	for _, op := range c.ops {
		if err := op(ctx, date); err != nil {
			return err
		}
	}
	return nil
}

// employMembersOf employs every unemployed member of the stable as freshly
// loaded, so members moved earlier in the same workflow are included.
func (s *StableService) employMembersOf(ctx context.Context, id lifecycle.Entity, date time.Time) error {
	fresh, err := s.stables.GetByID(ctx, id.ID())
	if err != nil {
		return err
	}
	return s.transitions.Transition(fresh, lifecycle.TransitionEmploy).
		OnDate(date).
		WithCascade(s.transitions.CascadeAllMembers()).
		Execute(ctx)
}

// suspendMembersOf suspends the stable's current members of the given types.
func (s *StableService) suspendMembersOf(ctx context.Context, id lifecycle.Entity, types []lifecycle.EntityType, date time.Time) error {
	fresh, err := s.stables.GetByID(ctx, id.ID())
	if err != nil {
		return err
	}
	members := fresh.CurrentMembers()
	if len(types) > 0 {
		allowed := make(map[lifecycle.EntityType]struct{}, len(types))
		for _, t := range types {
			allowed[t] = struct{}{}
		}
		kept := members[:0:0]
		for _, m := range members {
			if _, ok := allowed[m.Type()]; ok {
				kept = append(kept, m)
			}
		}
		members = kept
	}
	return s.transitions.transitionAll(ctx, members, lifecycle.TransitionSuspend, date)
}

// --- Merge ---

type StableMerge struct {
	svc       *StableService
	primary   *stable.Stable
	secondary *stable.Stable
	newName   string
	date      time.Time
	cascades  cascadeSet
}

// MergeStables folds secondary into primary: every wrestler and tag team
// moves over, the primary is optionally renamed, and the secondary retires.
// Manager edges stay put; managers attach to individual members, not to the
// group.
func (s *StableService) MergeStables(primary, secondary *stable.Stable) *StableMerge {
	return &StableMerge{svc: s, primary: primary, secondary: secondary}
}

func (m *StableMerge) WithNewName(name string) *StableMerge {
	m.newName = name
	return m
}

func (m *StableMerge) OnDate(date time.Time) *StableMerge {
	m.date = date
	return m
}

func (m *StableMerge) WithEmploymentCascade() *StableMerge {
	m.cascades.queue(func(ctx context.Context, date time.Time) error {
		return m.svc.employMembersOf(ctx, m.primary, date)
	})
	return m
}

func (m *StableMerge) WithSuspensionCascade(types ...lifecycle.EntityType) *StableMerge {
	m.cascades.queue(func(ctx context.Context, date time.Time) error {
		return m.svc.suspendMembersOf(ctx, m.primary, types, date)
	})
	return m
}

func (m *StableMerge) Execute(ctx context.Context) (*stable.Stable, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*stable.Stable, error) {
		date := lifecycle.ResolveDate(m.svc.transitions.clock, m.date)

		if err := m.svc.moveMembers(txCtx, m.secondary, m.primary, m.secondary.CurrentWrestlers(), date); err != nil {
			return nil, err
		}
		if err := m.svc.moveMembers(txCtx, m.secondary, m.primary, m.secondary.CurrentTagTeams(), date); err != nil {
			return nil, err
		}

		if m.newName != "" {
			name := m.newName
			if err := m.svc.stables.Update(txCtx, m.primary, lifecycle.EntityChanges{Name: &name}); err != nil {
				return nil, err
			}
		}

		err := m.svc.transitions.Transition(m.secondary, lifecycle.TransitionRetire).
			OnDate(date).
			Execute(txCtx)
		if err != nil {
			return nil, err
		}

		if err := m.cascades.run(txCtx, date); err != nil {
			return nil, err
		}

		m.svc.log.WithFields(logrus.Fields{
			"primary":   m.primary.ID(),
			"secondary": m.secondary.ID(),
		}).Info("stables merged")

		return m.svc.stables.GetByID(txCtx, m.primary.ID())
	})
}

// --- Split ---

type StableSplit struct {
	svc       *StableService
	original  *stable.Stable
	newName   string
	date      time.Time
	transfers transferSet
	cascades  cascadeSet
}

// SplitStable creates a new, empty stable; membership moves only through the
// transfer calls queued on the builder.
func (s *StableService) SplitStable(original *stable.Stable, newName string) *StableSplit {
	return &StableSplit{svc: s, original: original, newName: newName}
}

func (p *StableSplit) OnDate(date time.Time) *StableSplit {
	p.date = date
	return p
}

func (p *StableSplit) TransferWrestlers(members ...lifecycle.Entity) *StableSplit {
	p.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return p.svc.moveMembers(ctx, from, to, members, date)
	})
	return p
}

func (p *StableSplit) TransferTagTeams(members ...lifecycle.Entity) *StableSplit {
	p.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return p.svc.moveMembers(ctx, from, to, members, date)
	})
	return p
}

func (p *StableSplit) TransferManagers(members ...lifecycle.Entity) *StableSplit {
	p.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return p.svc.moveMembers(ctx, from, to, members, date)
	})
	return p
}

func (p *StableSplit) TransferAllAvailableMembers() *StableSplit {
	p.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return p.svc.transferAvailable(ctx, from, to, date)
	})
	return p
}

func (p *StableSplit) TransferMembersByCriteria(criteria Criteria) *StableSplit {
	p.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return p.svc.transferByCriteria(ctx, from, to, criteria, date)
	})
	return p
}

func (p *StableSplit) WithEmploymentCascade() *StableSplit {
	p.cascades.queue(func(ctx context.Context, date time.Time) error {
		return p.svc.employMembersOf(ctx, p.original, date)
	})
	return p
}

func (p *StableSplit) Execute(ctx context.Context) (*stable.Stable, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*stable.Stable, error) {
		date := lifecycle.ResolveDate(p.svc.transitions.clock, p.date)

		created, err := p.svc.stables.Create(txCtx, stable.New(p.newName))
		if err != nil {
			return nil, err
		}

		if err := p.transfers.run(txCtx, p.original, created, date); err != nil {
			return nil, err
		}
		if err := p.cascades.run(txCtx, date); err != nil {
			return nil, err
		}

		return p.svc.stables.GetByID(txCtx, created.ID())
	})
}

// --- Transfer between existing stables ---

type MemberTransfer struct {
	svc        *StableService
	from, to   *stable.Stable
	date       time.Time
	transfers  transferSet
	cascades   cascadeSet
	retireFrom bool
}

func (s *StableService) TransferMembers(from, to *stable.Stable) *MemberTransfer {
	return &MemberTransfer{svc: s, from: from, to: to}
}

func (t *MemberTransfer) OnDate(date time.Time) *MemberTransfer {
	t.date = date
	return t
}

func (t *MemberTransfer) TransferWrestlers(members ...lifecycle.Entity) *MemberTransfer {
	t.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return t.svc.moveMembers(ctx, from, to, members, date)
	})
	return t
}

func (t *MemberTransfer) TransferTagTeams(members ...lifecycle.Entity) *MemberTransfer {
	t.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return t.svc.moveMembers(ctx, from, to, members, date)
	})
	return t
}

func (t *MemberTransfer) TransferManagers(members ...lifecycle.Entity) *MemberTransfer {
	t.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return t.svc.moveMembers(ctx, from, to, members, date)
	})
	return t
}

func (t *MemberTransfer) TransferAllAvailableMembers() *MemberTransfer {
	t.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return t.svc.transferAvailable(ctx, from, to, date)
	})
	return t
}

func (t *MemberTransfer) TransferMembersByCriteria(criteria Criteria) *MemberTransfer {
	t.transfers.queue(func(ctx context.Context, from, to *stable.Stable, date time.Time) error {
		return t.svc.transferByCriteria(ctx, from, to, criteria, date)
	})
	return t
}

func (t *MemberTransfer) WithEmploymentCascade() *MemberTransfer {
	t.cascades.queue(func(ctx context.Context, date time.Time) error {
		return t.svc.employMembersOf(ctx, t.to, date)
	})
	return t
}

func (t *MemberTransfer) WithSuspensionCascade(types ...lifecycle.EntityType) *MemberTransfer {
	t.cascades.queue(func(ctx context.Context, date time.Time) error {
		return t.svc.suspendMembersOf(ctx, t.to, types, date)
	})
	return t
}

func (t *MemberTransfer) WithSourceStableRetirement() *MemberTransfer {
	t.retireFrom = true
	return t
}

func (t *MemberTransfer) Execute(ctx context.Context) (*stable.Stable, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*stable.Stable, error) {
		date := lifecycle.ResolveDate(t.svc.transitions.clock, t.date)

		if err := t.transfers.run(txCtx, t.from, t.to, date); err != nil {
			return nil, err
		}
		if err := t.cascades.run(txCtx, date); err != nil {
			return nil, err
		}
		if t.retireFrom {
			err := t.svc.transitions.Transition(t.from, lifecycle.TransitionRetire).
				OnDate(date).
				Execute(txCtx)
			if err != nil {
				return nil, err
			}
		}

		return t.svc.stables.GetByID(txCtx, t.to.ID())
	})
}

// transferAvailable moves the from-stable's available wrestlers and tag
// teams, each relationship kind filtered through the availability check.
func (s *StableService) transferAvailable(ctx context.Context, from, to *stable.Stable, date time.Time) error {
	wrestlers, err := s.transitions.Collection(from.CurrentWrestlers()).FilterByAvailability(true).Get()
	if err != nil {
		return err
	}
	if err := s.moveMembers(ctx, from, to, wrestlers, date); err != nil {
		return err
	}
	tagTeams, err := s.transitions.Collection(from.CurrentTagTeams()).FilterByAvailability(true).Get()
	if err != nil {
		return err
	}
	return s.moveMembers(ctx, from, to, tagTeams, date)
}

func (s *StableService) transferByCriteria(ctx context.Context, from, to *stable.Stable, criteria Criteria, date time.Time) error {
	c := s.transitions.Collection(from.CurrentMembers())
	if len(criteria.Types) > 0 {
		c = c.FilterByType(criteria.Types...)
	}
	if len(criteria.Statuses) > 0 {
		allowed := make(map[lifecycle.Status]struct{}, len(criteria.Statuses))
		for _, st := range criteria.Statuses {
			allowed[st] = struct{}{}
		}
		c = c.FilterBy(func(e lifecycle.Entity) bool {
			_, ok := allowed[e.Status()]
			return ok
		})
	}
	if criteria.AvailableOnly {
		c = c.FilterByAvailability(true)
	}
	members, err := c.Get()
	if err != nil {
		return err
	}
	return s.moveMembers(ctx, from, to, members, date)
}
