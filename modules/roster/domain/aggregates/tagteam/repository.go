package tagteam

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type Repository interface {
	lifecycle.StateRepository

	GetByID(ctx context.Context, id uuid.UUID) (*TagTeam, error)
	GetAll(ctx context.Context) ([]*TagTeam, error)
	Create(ctx context.Context, t *TagTeam) (*TagTeam, error)
}
