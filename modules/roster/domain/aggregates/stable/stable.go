package stable

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// Stable is a named group of wrestlers and tag teams. Stables activate and
// retire as a unit but are never suspended or injured; those states belong to
// their members. Manager edges on a stable are deliberate, member-level
// associations — merges do not move them.
type Stable struct {
	id        uuid.UUID
	name      string
	status    lifecycle.Status
	wrestlers []lifecycle.Entity
	tagTeams  []lifecycle.Entity
	managers  []lifecycle.Entity
}

func New(name string) *Stable {
	return &Stable{
		id:     uuid.New(),
		name:   strings.TrimSpace(name),
		status: lifecycle.StatusUnemployed,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	status lifecycle.Status,
	wrestlers []lifecycle.Entity,
	tagTeams []lifecycle.Entity,
	managers []lifecycle.Entity,
) *Stable {
	return &Stable{
		id:        id,
		name:      strings.TrimSpace(name),
		status:    status,
		wrestlers: wrestlers,
		tagTeams:  tagTeams,
		managers:  managers,
	}
}

func (s *Stable) ID() uuid.UUID              { return s.id }
func (s *Stable) Type() lifecycle.EntityType { return lifecycle.TypeStable }
func (s *Stable) Name() string               { return s.name }
func (s *Stable) Status() lifecycle.Status   { return s.status }

func (s *Stable) IsEmployed() bool          { return s.status.CountsAsEmployed() }
func (s *Stable) HasFutureEmployment() bool { return s.status == lifecycle.StatusFutureEmployment }
func (s *Stable) IsRetired() bool           { return s.status == lifecycle.StatusRetired }

func (s *Stable) EnsureCanBeEmployed() error { return lifecycle.EnsureCanBeEmployed(s) }
func (s *Stable) EnsureCanBeRetired() error  { return lifecycle.EnsureCanBeRetired(s) }

func (s *Stable) CurrentWrestlers() []lifecycle.Entity { return s.wrestlers }
func (s *Stable) CurrentTagTeams() []lifecycle.Entity  { return s.tagTeams }
func (s *Stable) CurrentManagers() []lifecycle.Entity  { return s.managers }

// CurrentMembers returns wrestlers then tag teams, the order member-wide
// operations iterate in.
func (s *Stable) CurrentMembers() []lifecycle.Entity {
	members := make([]lifecycle.Entity, 0, len(s.wrestlers)+len(s.tagTeams))
	members = append(members, s.wrestlers...)
	members = append(members, s.tagTeams...)
	return members
}
