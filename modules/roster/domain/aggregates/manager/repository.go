package manager

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Repository interface {
	lifecycle.StateRepository

	GetByID(ctx context.Context, id uuid.UUID) (*Manager, error)
	GetAll(ctx context.Context) ([]*Manager, error)
	Create(ctx context.Context, m *Manager) (*Manager, error)
}
