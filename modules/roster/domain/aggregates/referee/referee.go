package referee

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// Referee shares the individual lifecycle but holds no relationships.
type Referee struct {
	id     uuid.UUID
	name   string
	status lifecycle.Status
}

func New(name string) *Referee {
	return &Referee{
		id:     uuid.New(),
		name:   strings.TrimSpace(name),
		status: lifecycle.StatusUnemployed,
	}
}

func Hydrate(id uuid.UUID, name string, status lifecycle.Status) *Referee {
	return &Referee{
		id:     id,
		name:   strings.TrimSpace(name),
		status: status,
	}
}

func (r *Referee) ID() uuid.UUID              { return r.id }
func (r *Referee) Type() lifecycle.EntityType { return lifecycle.TypeReferee }
func (r *Referee) Name() string               { return r.name }
func (r *Referee) Status() lifecycle.Status   { return r.status }

func (r *Referee) IsEmployed() bool          { return r.status.CountsAsEmployed() }
func (r *Referee) HasFutureEmployment() bool { return r.status == lifecycle.StatusFutureEmployment }
func (r *Referee) IsSuspended() bool         { return r.status == lifecycle.StatusSuspended }
func (r *Referee) IsInjured() bool           { return r.status == lifecycle.StatusInjured }
func (r *Referee) IsRetired() bool           { return r.status == lifecycle.StatusRetired }
func (r *Referee) IsReleased() bool          { return r.status == lifecycle.StatusReleased }

func (r *Referee) EnsureCanBeEmployed() error   { return lifecycle.EnsureCanBeEmployed(r) }
func (r *Referee) EnsureCanBeSuspended() error  { return lifecycle.EnsureCanBeSuspended(r) }
func (r *Referee) EnsureCanBeInjured() error    { return lifecycle.EnsureCanBeInjured(r) }
func (r *Referee) EnsureCanBeRetired() error    { return lifecycle.EnsureCanBeRetired(r) }
func (r *Referee) EnsureCanBeReleased() error   { return lifecycle.EnsureCanBeReleased(r) }
func (r *Referee) EnsureCanBeReinstated() error { return lifecycle.EnsureCanBeReinstated(r) }
