package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
	"github.com/ringside-io/roster/pkg/eventbus"
	"github.com/ringside-io/roster/pkg/metrics"
)

// maxCascadeDepth bounds cascade recursion beyond the visited-set guard, so a
// relationship graph with an unguarded cycle fails loudly instead of blowing
// the stack.
const maxCascadeDepth = 32

type TransitionService struct {
	registry  *Registry
	publisher eventbus.EventBus
	clock     clockwork.Clock
	log       logrus.FieldLogger
}

func NewTransitionService(
	registry *Registry,
	publisher eventbus.EventBus,
	clock clockwork.Clock,
	log logrus.FieldLogger,
) *TransitionService {
	return &TransitionService{
		registry:  registry,
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// Transition starts a pipeline applying tr to exactly one entity. Cascades
// spawn additional, independent pipelines sharing the ambient transaction.
func (s *TransitionService) Transition(e lifecycle.Entity, tr lifecycle.Transition) *TransitionPipeline {
	return &TransitionPipeline{svc: s, entity: e, transition: tr}
}

type TransitionPipeline struct {
	svc         *TransitionService
	entity      lifecycle.Entity
	transition  lifecycle.Transition
	date        time.Time
	notes       string
	validations []lifecycle.ValidationStrategy
	cascades    []lifecycle.CascadeStrategy
}

func (p *TransitionPipeline) OnDate(date time.Time) *TransitionPipeline {
	p.date = date
	return p
}

func (p *TransitionPipeline) WithNotes(notes string) *TransitionPipeline {
	p.notes = notes
	return p
}

func (p *TransitionPipeline) WithValidation(v lifecycle.ValidationStrategy) *TransitionPipeline {
	p.validations = append(p.validations, v)
	return p
}

func (p *TransitionPipeline) WithCascade(c lifecycle.CascadeStrategy) *TransitionPipeline {
	p.cascades = append(p.cascades, c)
	return p
}

// Execute runs the pipeline inside the ambient transaction: default guard,
// custom validations in registration order, prior-state ending, the core
// repository mutation, then cascades in registration order. The first failure
// anywhere aborts the whole ambient transaction; cascades are not best-effort
// once inside the pipeline.
func (p *TransitionPipeline) Execute(ctx context.Context) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		scope, nested := scopeFrom(txCtx)
		if !nested {
			scope = newCascadeScope()
			txCtx = withScope(txCtx, scope)
		} else {
			scope.depth++
			defer func() { scope.depth-- }()
			if scope.depth > maxCascadeDepth {
				return lifecycle.ErrCascadeDepth.WithDetails(
					"%s while applying %s", lifecycle.KeyOf(p.entity), p.transition,
				)
			}
		}
		return p.run(txCtx)
	})
	if err != nil {
		metrics.TransitionsFailed.WithLabelValues(string(p.transition)).Inc()
	}
	return err
}

func (p *TransitionPipeline) run(ctx context.Context) error {
	if !p.transition.Valid() {
		return lifecycle.ErrUnknownTransition.WithDetails("%q", string(p.transition))
	}

	if err := p.transition.DefaultGuard(p.entity); err != nil {
		return err
	}
	for _, validate := range p.validations {
		if err := validate(p.entity, p.transition); err != nil {
			return err
		}
	}

	repo, err := p.svc.registry.StateFor(p.entity.Type())
	if err != nil {
		return err
	}

	date := lifecycle.ResolveDate(p.svc.clock, p.date)

	if err := p.transition.EndPriorState(ctx, repo, p.entity, date); err != nil {
		return errors.Wrapf(err, "ending prior state of %s", lifecycle.KeyOf(p.entity))
	}
	if err := p.transition.Apply(ctx, repo, p.entity, date, p.notes); err != nil {
		return errors.Wrapf(err, "applying %s to %s", p.transition, lifecycle.KeyOf(p.entity))
	}

	metrics.TransitionsApplied.WithLabelValues(string(p.transition), string(p.entity.Type())).Inc()
	p.svc.log.WithFields(logrus.Fields{
		"entity":     lifecycle.KeyOf(p.entity).String(),
		"transition": p.transition,
		"date":       date,
	}).Debug("transition applied")

	p.svc.publisher.Publish(&TransitionApplied{
		Entity:     p.entity,
		Transition: p.transition,
		Date:       date,
		Notes:      p.notes,
	})

	for _, cascade := range p.cascades {
		metrics.CascadesRun.WithLabelValues(string(p.transition)).Inc()
		if err := cascade(ctx, p.entity, date, p.transition); err != nil {
			return err
		}
	}
	return nil
}

// cascadeScope is the recursion guard shared by one top-level pipeline
// invocation and every pipeline its cascades spawn. It lives on the context,
// never in package state, so concurrent top-level calls cannot observe each
// other.
type cascadeScope struct {
	visited map[lifecycle.Key]struct{}
	depth   int
}

func newCascadeScope() *cascadeScope {
	return &cascadeScope{visited: make(map[lifecycle.Key]struct{})}
}

// visit marks k and reports whether this was the first visit in the scope.
func (s *cascadeScope) visit(k lifecycle.Key) bool {
	if _, seen := s.visited[k]; seen {
		return false
	}
	s.visited[k] = struct{}{}
	return true
}

type scopeCtxKey struct{}

func withScope(ctx context.Context, s *cascadeScope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

func scopeFrom(ctx context.Context) (*cascadeScope, bool) {
	s, ok := ctx.Value(scopeCtxKey{}).(*cascadeScope)
	return s, ok
}
