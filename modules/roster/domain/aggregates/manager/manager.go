package manager

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Manager struct {
	id     uuid.UUID
	name   string
	status lifecycle.Status
}

func New(name string) *Manager {
	return &Manager{
		id:     uuid.New(),
		name:   strings.TrimSpace(name),
		status: lifecycle.StatusUnemployed,
	}
}

func Hydrate(id uuid.UUID, name string, status lifecycle.Status) *Manager {
	return &Manager{
		id:     id,
		name:   strings.TrimSpace(name),
		status: status,
	}
}

func (m *Manager) ID() uuid.UUID              { return m.id }
func (m *Manager) Type() lifecycle.EntityType { return lifecycle.TypeManager }
func (m *Manager) Name() string               { return m.name }
func (m *Manager) Status() lifecycle.Status   { return m.status }

func (m *Manager) IsEmployed() bool          { return m.status.CountsAsEmployed() }
func (m *Manager) HasFutureEmployment() bool { return m.status == lifecycle.StatusFutureEmployment }
func (m *Manager) IsSuspended() bool         { return m.status == lifecycle.StatusSuspended }
func (m *Manager) IsInjured() bool           { return m.status == lifecycle.StatusInjured }
func (m *Manager) IsRetired() bool           { return m.status == lifecycle.StatusRetired }
func (m *Manager) IsReleased() bool          { return m.status == lifecycle.StatusReleased }

func (m *Manager) EnsureCanBeEmployed() error   { return lifecycle.EnsureCanBeEmployed(m) }
func (m *Manager) EnsureCanBeSuspended() error  { return lifecycle.EnsureCanBeSuspended(m) }
func (m *Manager) EnsureCanBeInjured() error    { return lifecycle.EnsureCanBeInjured(m) }
func (m *Manager) EnsureCanBeRetired() error    { return lifecycle.EnsureCanBeRetired(m) }
func (m *Manager) EnsureCanBeReleased() error   { return lifecycle.EnsureCanBeReleased(m) }
func (m *Manager) EnsureCanBeReinstated() error { return lifecycle.EnsureCanBeReinstated(m) }
