package wrestler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Wrestler struct {
	id       uuid.UUID
	name     string
	hometown string
	status   lifecycle.Status
	managers []lifecycle.Entity
	stableID uuid.UUID
	inStable bool
}

func New(name, hometown string) *Wrestler {
	return &Wrestler{
		id:       uuid.New(),
		name:     strings.TrimSpace(name),
		hometown: strings.TrimSpace(hometown),
		status:   lifecycle.StatusUnemployed,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	hometown string,
	status lifecycle.Status,
	managers []lifecycle.Entity,
	stableID *uuid.UUID,
) *Wrestler {
	w := &Wrestler{
		id:       id,
		name:     strings.TrimSpace(name),
		hometown: strings.TrimSpace(hometown),
		status:   status,
		managers: managers,
	}
	if stableID != nil {
		w.stableID = *stableID
		w.inStable = true
	}
	return w
}

func (w *Wrestler) ID() uuid.UUID              { return w.id }
func (w *Wrestler) Type() lifecycle.EntityType { return lifecycle.TypeWrestler }
func (w *Wrestler) Name() string               { return w.name }
func (w *Wrestler) Hometown() string           { return w.hometown }
func (w *Wrestler) Status() lifecycle.Status   { return w.status }

func (w *Wrestler) IsEmployed() bool          { return w.status.CountsAsEmployed() }
func (w *Wrestler) HasFutureEmployment() bool { return w.status == lifecycle.StatusFutureEmployment }
func (w *Wrestler) IsSuspended() bool         { return w.status == lifecycle.StatusSuspended }
func (w *Wrestler) IsInjured() bool           { return w.status == lifecycle.StatusInjured }
func (w *Wrestler) IsRetired() bool           { return w.status == lifecycle.StatusRetired }
func (w *Wrestler) IsReleased() bool          { return w.status == lifecycle.StatusReleased }

func (w *Wrestler) EnsureCanBeEmployed() error   { return lifecycle.EnsureCanBeEmployed(w) }
func (w *Wrestler) EnsureCanBeSuspended() error  { return lifecycle.EnsureCanBeSuspended(w) }
func (w *Wrestler) EnsureCanBeInjured() error    { return lifecycle.EnsureCanBeInjured(w) }
func (w *Wrestler) EnsureCanBeRetired() error    { return lifecycle.EnsureCanBeRetired(w) }
func (w *Wrestler) EnsureCanBeReleased() error   { return lifecycle.EnsureCanBeReleased(w) }
func (w *Wrestler) EnsureCanBeReinstated() error { return lifecycle.EnsureCanBeReinstated(w) }

func (w *Wrestler) CurrentManagers() []lifecycle.Entity { return w.managers }

func (w *Wrestler) CurrentStableID() (uuid.UUID, bool) {
	return w.stableID, w.inStable
}
