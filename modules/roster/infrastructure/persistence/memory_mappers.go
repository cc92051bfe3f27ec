package persistence

import (
	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/manager"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/referee"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

func stableIDPtr(m lifecycle.StableMember) *uuid.UUID {
	if id, ok := m.CurrentStableID(); ok {
		return &id
	}
	return nil
}

// withStatus re-hydrates an aggregate with a new status, preserving
// everything else.
func withStatus(e lifecycle.Entity, status lifecycle.Status) (lifecycle.Entity, error) {
	switch v := e.(type) {
	case *wrestler.Wrestler:
		return wrestler.Hydrate(v.ID(), v.Name(), v.Hometown(), status, v.CurrentManagers(), stableIDPtr(v)), nil
	case *manager.Manager:
		return manager.Hydrate(v.ID(), v.Name(), status), nil
	case *referee.Referee:
		return referee.Hydrate(v.ID(), v.Name(), status), nil
	case *tagteam.TagTeam:
		return tagteam.Hydrate(v.ID(), v.Name(), status, v.CurrentWrestlers(), v.CurrentManagers(), stableIDPtr(v)), nil
	case *stable.Stable:
		return stable.Hydrate(v.ID(), v.Name(), status, v.CurrentWrestlers(), v.CurrentTagTeams(), v.CurrentManagers()), nil
	default:
		return nil, ErrUnknownEntityType.WithDetails("%T", e)
	}
}

func withName(e lifecycle.Entity, name string) (lifecycle.Entity, error) {
	switch v := e.(type) {
	case *wrestler.Wrestler:
		return wrestler.Hydrate(v.ID(), name, v.Hometown(), v.Status(), v.CurrentManagers(), stableIDPtr(v)), nil
	case *manager.Manager:
		return manager.Hydrate(v.ID(), name, v.Status()), nil
	case *referee.Referee:
		return referee.Hydrate(v.ID(), name, v.Status()), nil
	case *tagteam.TagTeam:
		return tagteam.Hydrate(v.ID(), name, v.Status(), v.CurrentWrestlers(), v.CurrentManagers(), stableIDPtr(v)), nil
	case *stable.Stable:
		return stable.Hydrate(v.ID(), name, v.Status(), v.CurrentWrestlers(), v.CurrentTagTeams(), v.CurrentManagers()), nil
	default:
		return nil, ErrUnknownEntityType.WithDetails("%T", e)
	}
}

// resolveMembers maps each member snapshot to the store's current aggregate,
// so relationship lists read through a repository reflect state changes made
// after the edge was recorded. Tag teams resolve their own member lists too.
func (s *MemoryStore) resolveMembers(members []lifecycle.Entity) []lifecycle.Entity {
	if members == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(members)
}

func (s *MemoryStore) resolveLocked(members []lifecycle.Entity) []lifecycle.Entity {
	if members == nil {
		return nil
	}
	out := make([]lifecycle.Entity, len(members))
	for i, m := range members {
		cur := m
		if stored, ok := s.entities[lifecycle.KeyOf(m)]; ok {
			cur = stored
		}
		if team, ok := cur.(*tagteam.TagTeam); ok {
			cur = tagteam.Hydrate(
				team.ID(), team.Name(), team.Status(),
				s.resolveLocked(team.CurrentWrestlers()),
				s.resolveLocked(team.CurrentManagers()),
				stableIDPtr(team),
			)
		}
		out[i] = cur
	}
	return out
}

// withStableID rebuilds a stable-member aggregate pointing at (or detached
// from) a stable.
func withStableID(e lifecycle.Entity, stableID *uuid.UUID) (lifecycle.Entity, error) {
	switch v := e.(type) {
	case *wrestler.Wrestler:
		return wrestler.Hydrate(v.ID(), v.Name(), v.Hometown(), v.Status(), v.CurrentManagers(), stableID), nil
	case *tagteam.TagTeam:
		return tagteam.Hydrate(v.ID(), v.Name(), v.Status(), v.CurrentWrestlers(), v.CurrentManagers(), stableID), nil
	default:
		return nil, ErrUnknownEntityType.WithDetails("%T cannot belong to a stable", e)
	}
}
