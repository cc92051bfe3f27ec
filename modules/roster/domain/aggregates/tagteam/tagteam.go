package tagteam

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// TagTeam is a two-or-more wrestler partnership. It shares the employment
// lifecycle but cannot be injured; injuries belong to its wrestlers.
type TagTeam struct {
	id        uuid.UUID
	name      string
	status    lifecycle.Status
	wrestlers []lifecycle.Entity
	managers  []lifecycle.Entity
	stableID  uuid.UUID
	inStable  bool
}

func New(name string) *TagTeam {
	return &TagTeam{
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
	managers []lifecycle.Entity,
	stableID *uuid.UUID,
) *TagTeam {
	t := &TagTeam{
		id:        id,
		name:      strings.TrimSpace(name),
		status:    status,
		wrestlers: wrestlers,
		managers:  managers,
	}
	if stableID != nil {
		t.stableID = *stableID
		t.inStable = true
	}
	return t
}

func (t *TagTeam) ID() uuid.UUID              { return t.id }
func (t *TagTeam) Type() lifecycle.EntityType { return lifecycle.TypeTagTeam }
func (t *TagTeam) Name() string               { return t.name }
func (t *TagTeam) Status() lifecycle.Status   { return t.status }

func (t *TagTeam) IsEmployed() bool          { return t.status.CountsAsEmployed() }
func (t *TagTeam) HasFutureEmployment() bool { return t.status == lifecycle.StatusFutureEmployment }
func (t *TagTeam) IsSuspended() bool         { return t.status == lifecycle.StatusSuspended }
func (t *TagTeam) IsRetired() bool           { return t.status == lifecycle.StatusRetired }
func (t *TagTeam) IsReleased() bool          { return t.status == lifecycle.StatusReleased }

func (t *TagTeam) EnsureCanBeEmployed() error   { return lifecycle.EnsureCanBeEmployed(t) }
func (t *TagTeam) EnsureCanBeSuspended() error  { return lifecycle.EnsureCanBeSuspended(t) }
func (t *TagTeam) EnsureCanBeRetired() error    { return lifecycle.EnsureCanBeRetired(t) }
func (t *TagTeam) EnsureCanBeReleased() error   { return lifecycle.EnsureCanBeReleased(t) }
func (t *TagTeam) EnsureCanBeReinstated() error { return lifecycle.EnsureCanBeReinstated(t) }

func (t *TagTeam) CurrentWrestlers() []lifecycle.Entity { return t.wrestlers }
func (t *TagTeam) CurrentManagers() []lifecycle.Entity  { return t.managers }

func (t *TagTeam) CurrentStableID() (uuid.UUID, bool) {
	return t.stableID, t.inStable
}
