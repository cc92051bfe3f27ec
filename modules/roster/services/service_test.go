package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
	"github.com/ringside-io/roster/pkg/eventbus"
)

// passTransactor satisfies the transaction collaborator without any rollback
// semantics; repository-call ordering tests do not need one.
type passTransactor struct{}

func (passTransactor) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type repoCall struct {
	op     string
	entity string
	date   time.Time
	notes  string
}

// recordingRepo captures every state mutation in call order. One instance can
// back several entity types, which is what makes cross-entity ordering
// assertions possible.
type recordingRepo struct {
	calls  []repoCall
	failOn map[string]error
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{failOn: make(map[string]error)}
}

func (r *recordingRepo) record(op string, e lifecycle.Entity, date time.Time, notes string) error {
	if err, ok := r.failOn[op]; ok {
		return err
	}
	r.calls = append(r.calls, repoCall{op: op, entity: e.Name(), date: date, notes: notes})
	return nil
}

func (r *recordingRepo) ops() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.op+" "+c.entity)
	}
	return out
}

func (r *recordingRepo) CreateEmployment(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("employment", e, date, notes)
}

func (r *recordingRepo) CreateSuspension(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("suspension", e, date, notes)
}

func (r *recordingRepo) CreateRelease(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("release", e, date, notes)
}

func (r *recordingRepo) CreateRetirement(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("retirement", e, date, notes)
}

func (r *recordingRepo) CreateInjury(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("injury", e, date, notes)
}

func (r *recordingRepo) CreateReinstatement(_ context.Context, e lifecycle.Entity, date time.Time, notes string) error {
	return r.record("reinstatement", e, date, notes)
}

func (r *recordingRepo) EndRetirement(_ context.Context, e lifecycle.Entity, date time.Time) error {
	return r.record("end-retirement", e, date, "")
}

func (r *recordingRepo) Update(_ context.Context, e lifecycle.Entity, changes lifecycle.EntityChanges) error {
	name := ""
	if changes.Name != nil {
		name = *changes.Name
	}
	return r.record("update", e, time.Time{}, name)
}

func newID() uuid.UUID { return uuid.New() }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   *TransitionService
	repo  *recordingRepo
	bus   eventbus.EventBus
	clock *clockwork.FakeClock
	ctx   context.Context
}

// newTestEnv wires one recording repository behind every entity type and a
// pass-through transactor into the context.
func newTestEnv() *testEnv {
	repo := newRecordingRepo()
	registry := NewRegistry().
		RegisterState(lifecycle.TypeWrestler, repo).
		RegisterState(lifecycle.TypeManager, repo).
		RegisterState(lifecycle.TypeReferee, repo).
		RegisterState(lifecycle.TypeTagTeam, repo).
		RegisterState(lifecycle.TypeStable, repo)

	log := testLogger()
	bus := eventbus.NewEventPublisher(log)
	clock := clockwork.NewFakeClockAt(testNow)
	return &testEnv{
		svc:   NewTransitionService(registry, bus, clock, log),
		repo:  repo,
		bus:   bus,
		clock: clock,
		ctx:   composables.WithTransactor(context.Background(), passTransactor{}),
	}
}
