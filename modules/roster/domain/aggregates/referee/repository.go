package referee

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Repository interface {
	lifecycle.StateRepository

	GetByID(ctx context.Context, id uuid.UUID) (*Referee, error)
	GetAll(ctx context.Context) ([]*Referee, error)
	Create(ctx context.Context, r *Referee) (*Referee, error)
}
