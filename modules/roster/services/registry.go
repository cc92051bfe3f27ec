package services

import (
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// Registry maps entity type tags to their repositories. It is built once at
// startup; resolving a type nobody registered is a configuration error, not a
// business failure.
type Registry struct {
	state map[lifecycle.EntityType]lifecycle.StateRepository
}

func NewRegistry() *Registry {
	return &Registry{
		state: make(map[lifecycle.EntityType]lifecycle.StateRepository),
	}
}

func (r *Registry) RegisterState(t lifecycle.EntityType, repo lifecycle.StateRepository) *Registry {
	r.state[t] = repo
	return r
}

func (r *Registry) StateFor(t lifecycle.EntityType) (lifecycle.StateRepository, error) {
	repo, ok := r.state[t]
	if !ok {
		return nil, lifecycle.ErrNoRepository.WithDetails("entity type %q", string(t))
	}
	return repo, nil
}
