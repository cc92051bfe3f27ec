package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/manager"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/referee"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
)

type PgWrestlerRepository struct {
	pgStateRepository
}

func NewPgWrestlerRepository(clock clockwork.Clock) wrestler.Repository {
	return &PgWrestlerRepository{pgStateRepository{clock: clock}}
}

const selectWrestlerQuery = `
	SELECT w.id, w.name, w.hometown, w.status, sm.stable_id
	FROM wrestlers w
	LEFT JOIN stable_members sm
	  ON sm.member_type = 'wrestler' AND sm.member_id = w.id AND sm.left_at IS NULL
	WHERE w.id = $1`

func (r *PgWrestlerRepository) GetByID(ctx context.Context, id uuid.UUID) (*wrestler.Wrestler, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}

	var (
		name, hometown, status string
		stableID               *uuid.UUID
	)
	row := q.QueryRow(ctx, selectWrestlerQuery, id)
	if err := row.Scan(&id, &name, &hometown, &status, &stableID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithDetails("wrestler %s", id)
		}
		return nil, gerrors.Wrap(err, "loading wrestler")
	}

	managers, err := r.currentManagers(ctx, id)
	if err != nil {
		return nil, err
	}
	return wrestler.Hydrate(id, name, hometown, lifecycle.Status(status), managers, stableID), nil
}

const selectWrestlerManagersQuery = `
	SELECT m.id, m.name, m.status
	FROM wrestler_managers wm
	JOIN managers m ON m.id = wm.manager_id
	WHERE wm.wrestler_id = $1 AND wm.ended_at IS NULL
	ORDER BY wm.started_at`

func (r *PgWrestlerRepository) currentManagers(ctx context.Context, wrestlerID uuid.UUID) ([]lifecycle.Entity, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, selectWrestlerManagersQuery, wrestlerID)
	if err != nil {
		return nil, gerrors.Wrap(err, "loading wrestler managers")
	}
	defer rows.Close()

	var out []lifecycle.Entity
	for rows.Next() {
		var (
			id           uuid.UUID
			name, status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning manager row")
		}
		out = append(out, manager.Hydrate(id, name, lifecycle.Status(status)))
	}
	return out, rows.Err()
}

func (r *PgWrestlerRepository) GetAll(ctx context.Context) ([]*wrestler.Wrestler, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, name, hometown, status FROM wrestlers ORDER BY name`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing wrestlers")
	}
	defer rows.Close()

	var out []*wrestler.Wrestler
	for rows.Next() {
		var (
			id                     uuid.UUID
			name, hometown, status string
		)
		if err := rows.Scan(&id, &name, &hometown, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning wrestler row")
		}
		out = append(out, wrestler.Hydrate(id, name, hometown, lifecycle.Status(status), nil, nil))
	}
	return out, rows.Err()
}

func (r *PgWrestlerRepository) Create(ctx context.Context, w *wrestler.Wrestler) (*wrestler.Wrestler, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO wrestlers (id, name, hometown, status) VALUES ($1, $2, $3, $4)`,
		w.ID(), w.Name(), w.Hometown(), string(w.Status()),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "inserting wrestler")
	}
	return w, nil
}

type PgManagerRepository struct {
	pgStateRepository
}

func NewPgManagerRepository(clock clockwork.Clock) manager.Repository {
	return &PgManagerRepository{pgStateRepository{clock: clock}}
}

func (r *PgManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*manager.Manager, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	var name, status string
	row := q.QueryRow(ctx, `SELECT id, name, status FROM managers WHERE id = $1`, id)
	if err := row.Scan(&id, &name, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithDetails("manager %s", id)
		}
		return nil, gerrors.Wrap(err, "loading manager")
	}
	return manager.Hydrate(id, name, lifecycle.Status(status)), nil
}

func (r *PgManagerRepository) GetAll(ctx context.Context) ([]*manager.Manager, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, name, status FROM managers ORDER BY name`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing managers")
	}
	defer rows.Close()

	var out []*manager.Manager
	for rows.Next() {
		var (
			id           uuid.UUID
			name, status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning manager row")
		}
		out = append(out, manager.Hydrate(id, name, lifecycle.Status(status)))
	}
	return out, rows.Err()
}

func (r *PgManagerRepository) Create(ctx context.Context, m *manager.Manager) (*manager.Manager, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO managers (id, name, status) VALUES ($1, $2, $3)`,
		m.ID(), m.Name(), string(m.Status()),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "inserting manager")
	}
	return m, nil
}

type PgRefereeRepository struct {
	pgStateRepository
}

func NewPgRefereeRepository(clock clockwork.Clock) referee.Repository {
	return &PgRefereeRepository{pgStateRepository{clock: clock}}
}

func (r *PgRefereeRepository) GetByID(ctx context.Context, id uuid.UUID) (*referee.Referee, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	var name, status string
	row := q.QueryRow(ctx, `SELECT id, name, status FROM referees WHERE id = $1`, id)
	if err := row.Scan(&id, &name, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithDetails("referee %s", id)
		}
		return nil, gerrors.Wrap(err, "loading referee")
	}
	return referee.Hydrate(id, name, lifecycle.Status(status)), nil
}

func (r *PgRefereeRepository) GetAll(ctx context.Context) ([]*referee.Referee, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, name, status FROM referees ORDER BY name`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing referees")
	}
	defer rows.Close()

	var out []*referee.Referee
	for rows.Next() {
		var (
			id           uuid.UUID
			name, status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning referee row")
		}
		out = append(out, referee.Hydrate(id, name, lifecycle.Status(status)))
	}
	return out, rows.Err()
}

func (r *PgRefereeRepository) Create(ctx context.Context, ref *referee.Referee) (*referee.Referee, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO referees (id, name, status) VALUES ($1, $2, $3)`,
		ref.ID(), ref.Name(), string(ref.Status()),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "inserting referee")
	}
	return ref, nil
}

type PgTagTeamRepository struct {
	pgStateRepository
}

func NewPgTagTeamRepository(clock clockwork.Clock) tagteam.Repository {
	return &PgTagTeamRepository{pgStateRepository{clock: clock}}
}

const selectTagTeamQuery = `
	SELECT t.id, t.name, t.status, sm.stable_id
	FROM tag_teams t
	LEFT JOIN stable_members sm
	  ON sm.member_type = 'tagteam' AND sm.member_id = t.id AND sm.left_at IS NULL
	WHERE t.id = $1`

const selectTagTeamWrestlersQuery = `
	SELECT w.id, w.name, w.hometown, w.status
	FROM tag_team_wrestlers tw
	JOIN wrestlers w ON w.id = tw.wrestler_id
	WHERE tw.tag_team_id = $1 AND tw.left_at IS NULL
	ORDER BY tw.joined_at`

func (r *PgTagTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*tagteam.TagTeam, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}

	var (
		name, status string
		stableID     *uuid.UUID
	)
	row := q.QueryRow(ctx, selectTagTeamQuery, id)
	if err := row.Scan(&id, &name, &status, &stableID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithDetails("tag team %s", id)
		}
		return nil, gerrors.Wrap(err, "loading tag team")
	}

	rows, err := q.Query(ctx, selectTagTeamWrestlersQuery, id)
	if err != nil {
		return nil, gerrors.Wrap(err, "loading tag team wrestlers")
	}
	defer rows.Close()

	var wrestlers []lifecycle.Entity
	for rows.Next() {
		var (
			wid                     uuid.UUID
			wname, hometown, wstatus string
		)
		if err := rows.Scan(&wid, &wname, &hometown, &wstatus); err != nil {
			return nil, gerrors.Wrap(err, "scanning tag team wrestler row")
		}
		wrestlers = append(wrestlers, wrestler.Hydrate(wid, wname, hometown, lifecycle.Status(wstatus), nil, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tagteam.Hydrate(id, name, lifecycle.Status(status), wrestlers, nil, stableID), nil
}

func (r *PgTagTeamRepository) GetAll(ctx context.Context) ([]*tagteam.TagTeam, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, name, status FROM tag_teams ORDER BY name`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing tag teams")
	}
	defer rows.Close()

	var out []*tagteam.TagTeam
	for rows.Next() {
		var (
			id           uuid.UUID
			name, status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning tag team row")
		}
		out = append(out, tagteam.Hydrate(id, name, lifecycle.Status(status), nil, nil, nil))
	}
	return out, rows.Err()
}

func (r *PgTagTeamRepository) Create(ctx context.Context, t *tagteam.TagTeam) (*tagteam.TagTeam, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO tag_teams (id, name, status) VALUES ($1, $2, $3)`,
		t.ID(), t.Name(), string(t.Status()),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "inserting tag team")
	}
	return t, nil
}

type PgStableRepository struct {
	pgStateRepository
}

func NewPgStableRepository(clock clockwork.Clock) stable.Repository {
	return &PgStableRepository{pgStateRepository{clock: clock}}
}

const selectStableMembersQuery = `
	SELECT member_type, member_id FROM stable_members
	WHERE stable_id = $1 AND left_at IS NULL
	ORDER BY joined_at`

func (r *PgStableRepository) GetByID(ctx context.Context, id uuid.UUID) (*stable.Stable, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}

	var name, status string
	row := q.QueryRow(ctx, `SELECT id, name, status FROM stables WHERE id = $1`, id)
	if err := row.Scan(&id, &name, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithDetails("stable %s", id)
		}
		return nil, gerrors.Wrap(err, "loading stable")
	}

	rows, err := q.Query(ctx, selectStableMembersQuery, id)
	if err != nil {
		return nil, gerrors.Wrap(err, "loading stable members")
	}
	defer rows.Close()

	type memberRef struct {
		kind string
		id   uuid.UUID
	}
	var refs []memberRef
	for rows.Next() {
		var ref memberRef
		if err := rows.Scan(&ref.kind, &ref.id); err != nil {
			return nil, gerrors.Wrap(err, "scanning stable member row")
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var wrestlers, tagTeams, managers []lifecycle.Entity
	wrestlerRepo := &PgWrestlerRepository{r.pgStateRepository}
	tagTeamRepo := &PgTagTeamRepository{r.pgStateRepository}
	managerRepo := &PgManagerRepository{r.pgStateRepository}
	for _, ref := range refs {
		switch lifecycle.EntityType(ref.kind) {
		case lifecycle.TypeWrestler:
			w, err := wrestlerRepo.GetByID(ctx, ref.id)
			if err != nil {
				return nil, err
			}
			wrestlers = append(wrestlers, w)
		case lifecycle.TypeTagTeam:
			t, err := tagTeamRepo.GetByID(ctx, ref.id)
			if err != nil {
				return nil, err
			}
			tagTeams = append(tagTeams, t)
		case lifecycle.TypeManager:
			m, err := managerRepo.GetByID(ctx, ref.id)
			if err != nil {
				return nil, err
			}
			managers = append(managers, m)
		}
	}

	return stable.Hydrate(id, name, lifecycle.Status(status), wrestlers, tagTeams, managers), nil
}

func (r *PgStableRepository) GetAll(ctx context.Context) ([]*stable.Stable, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, name, status FROM stables ORDER BY name`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing stables")
	}
	defer rows.Close()

	var out []*stable.Stable
	for rows.Next() {
		var (
			id           uuid.UUID
			name, status string
		)
		if err := rows.Scan(&id, &name, &status); err != nil {
			return nil, gerrors.Wrap(err, "scanning stable row")
		}
		out = append(out, stable.Hydrate(id, name, lifecycle.Status(status), nil, nil, nil))
	}
	return out, rows.Err()
}

func (r *PgStableRepository) Create(ctx context.Context, s *stable.Stable) (*stable.Stable, error) {
	q, err := db(ctx)
	if err != nil {
		return nil, err
	}
	_, err = q.Exec(ctx,
		`INSERT INTO stables (id, name, status) VALUES ($1, $2, $3)`,
		s.ID(), s.Name(), string(s.Status()),
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "inserting stable")
	}
	return s, nil
}

const insertMemberQuery = `
	INSERT INTO stable_members (stable_id, member_type, member_id, joined_at)
	VALUES ($1, $2, $3, $4)`

const removeMemberQuery = `
	UPDATE stable_members SET left_at = $4
	WHERE stable_id = $1 AND member_type = $2 AND member_id = $3 AND left_at IS NULL`

func (r *PgStableRepository) addMember(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	q, err := db(ctx)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, insertMemberQuery, st.ID(), string(member.Type()), member.ID(), date)
	if err != nil {
		return gerrors.Wrapf(err, "adding %s to stable %s", lifecycle.KeyOf(member), st.ID())
	}
	return nil
}

func (r *PgStableRepository) removeMember(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	q, err := db(ctx)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, removeMemberQuery, st.ID(), string(member.Type()), member.ID(), date)
	if err != nil {
		return gerrors.Wrapf(err, "removing %s from stable %s", lifecycle.KeyOf(member), st.ID())
	}
	return nil
}

func (r *PgStableRepository) AddWrestler(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.addMember(ctx, st, member, date)
}

func (r *PgStableRepository) RemoveWrestler(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.removeMember(ctx, st, member, date)
}

func (r *PgStableRepository) AddTagTeam(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.addMember(ctx, st, member, date)
}

func (r *PgStableRepository) RemoveTagTeam(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.removeMember(ctx, st, member, date)
}

func (r *PgStableRepository) AddManager(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.addMember(ctx, st, member, date)
}

func (r *PgStableRepository) RemoveManager(ctx context.Context, st, member lifecycle.Entity, date time.Time) error {
	return r.removeMember(ctx, st, member, date)
}
