package wrestler

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Repository interface {
	lifecycle.StateRepository

	GetByID(ctx context.Context, id uuid.UUID) (*Wrestler, error)
	GetAll(ctx context.Context) ([]*Wrestler, error)
	Create(ctx context.Context, w *Wrestler) (*Wrestler, error)
}
