package persistence

import (
	"github.com/ringside-io/roster/pkg/serrors"
)

var (
	ErrNotFound          = serrors.NewError("PERSISTENCE_NOT_FOUND", "record not found", "")
	ErrUnknownPeriodKind = serrors.NewError("CONFIG_UNKNOWN_PERIOD_KIND", "unknown state period kind", "")
	ErrUnknownEntityType = serrors.NewError("CONFIG_UNKNOWN_ENTITY_TYPE", "unknown entity type", "")
)
