package stable

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

// Repository persists stables and their membership edges.
type Repository interface {
	lifecycle.StateRepository
	lifecycle.MembershipRepository

	GetByID(ctx context.Context, id uuid.UUID) (*Stable, error)
	GetAll(ctx context.Context) ([]*Stable, error)
	Create(ctx context.Context, s *Stable) (*Stable, error)
}
