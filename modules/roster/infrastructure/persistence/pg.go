package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
)

// querier is satisfied by pgx.Tx and *pgxpool.Pool; repositories run against
// the ambient transaction when one is open and fall back to the pool for
// reads outside one.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func db(ctx context.Context) (querier, error) {
	if tx, err := composables.UseTx(ctx); err == nil {
		return tx, nil
	}
	return composables.UsePool(ctx)
}

var statusUpdates = map[lifecycle.EntityType]string{
	lifecycle.TypeWrestler: `UPDATE wrestlers SET status = $2 WHERE id = $1`,
	lifecycle.TypeManager:  `UPDATE managers SET status = $2 WHERE id = $1`,
	lifecycle.TypeReferee:  `UPDATE referees SET status = $2 WHERE id = $1`,
	lifecycle.TypeTagTeam:  `UPDATE tag_teams SET status = $2 WHERE id = $1`,
	lifecycle.TypeStable:   `UPDATE stables SET status = $2 WHERE id = $1`,
}

var renameUpdates = map[lifecycle.EntityType]string{
	lifecycle.TypeWrestler: `UPDATE wrestlers SET name = $2 WHERE id = $1`,
	lifecycle.TypeManager:  `UPDATE managers SET name = $2 WHERE id = $1`,
	lifecycle.TypeReferee:  `UPDATE referees SET name = $2 WHERE id = $1`,
	lifecycle.TypeTagTeam:  `UPDATE tag_teams SET name = $2 WHERE id = $1`,
	lifecycle.TypeStable:   `UPDATE stables SET name = $2 WHERE id = $1`,
}

// pgStateRepository persists state periods in one table keyed by entity type
// and id, and mirrors the derived status onto the entity row. Shared by every
// typed pg repository.
type pgStateRepository struct {
	clock clockwork.Clock
}

const insertPeriodQuery = `
	INSERT INTO state_periods (entity_type, entity_id, kind, started_at, notes)
	VALUES ($1, $2, $3, $4, $5)`

func (r pgStateRepository) applyState(ctx context.Context, e lifecycle.Entity, kind PeriodKind, date time.Time, notes string) error {
	q, err := db(ctx)
	if err != nil {
		return err
	}
	status, err := statusAfter(kind, date, r.clock.Now())
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, insertPeriodQuery, string(e.Type()), e.ID(), string(kind), date, notes); err != nil {
		return gerrors.Wrapf(err, "inserting %s period for %s", kind, lifecycle.KeyOf(e))
	}
	update, ok := statusUpdates[e.Type()]
	if !ok {
		return ErrUnknownEntityType.WithDetails("%q", string(e.Type()))
	}
	if _, err := q.Exec(ctx, update, e.ID(), string(status)); err != nil {
		return gerrors.Wrapf(err, "updating status of %s", lifecycle.KeyOf(e))
	}
	return nil
}

func (r pgStateRepository) CreateEmployment(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodEmployment, date, notes)
}

func (r pgStateRepository) CreateSuspension(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodSuspension, date, notes)
}

func (r pgStateRepository) CreateRelease(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodRelease, date, notes)
}

func (r pgStateRepository) CreateRetirement(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodRetirement, date, notes)
}

func (r pgStateRepository) CreateInjury(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodInjury, date, notes)
}

func (r pgStateRepository) CreateReinstatement(ctx context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.applyState(ctx, e, PeriodReinstatement, date, notes)
}

const openRetirementQuery = `
	SELECT started_at FROM state_periods
	WHERE entity_type = $1 AND entity_id = $2 AND kind = 'retirement' AND ended_at IS NULL
	ORDER BY started_at DESC LIMIT 1`

const endRetirementQuery = `
	UPDATE state_periods SET ended_at = $3
	WHERE entity_type = $1 AND entity_id = $2 AND kind = 'retirement' AND ended_at IS NULL`

func (r pgStateRepository) EndRetirement(ctx context.Context, e lifecycle.Entity, date time.Time) error {
	q, err := db(ctx)
	if err != nil {
		return err
	}
	var started time.Time
	if err := q.QueryRow(ctx, openRetirementQuery, string(e.Type()), e.ID()).Scan(&started); err != nil {
		if gerrors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound.WithDetails("open retirement for %s", lifecycle.KeyOf(e))
		}
		return gerrors.Wrapf(err, "reading open retirement of %s", lifecycle.KeyOf(e))
	}
	if err := lifecycle.ValidateRange(started, date); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, endRetirementQuery, string(e.Type()), e.ID(), date); err != nil {
		return gerrors.Wrapf(err, "ending retirement of %s", lifecycle.KeyOf(e))
	}
	return nil
}

func (r pgStateRepository) Update(ctx context.Context, e lifecycle.Entity, changes lifecycle.EntityChanges) error {
	if changes.Name == nil {
		return nil
	}
	q, err := db(ctx)
	if err != nil {
		return err
	}
	update, ok := renameUpdates[e.Type()]
	if !ok {
		return ErrUnknownEntityType.WithDetails("%q", string(e.Type()))
	}
	if _, err := q.Exec(ctx, update, e.ID(), *changes.Name); err != nil {
		return gerrors.Wrapf(err, "renaming %s", lifecycle.KeyOf(e))
	}
	return nil
}
