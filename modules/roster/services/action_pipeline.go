package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
	"github.com/ringside-io/roster/pkg/metrics"
)

// ActionPipeline queues heterogeneous operations — stable merges and splits,
// batch transitions, custom callables — and executes them in order inside one
// ambient transaction.
//
// Compensation note: for operations whose effects stay inside the
// transaction, compensating actions duplicate the transactional rollback.
// They are kept for effects that escape it — events already published to
// listeners, custom callables with external side effects — and are always
// best-effort: a failing compensation is logged and swallowed, never masking
// the original error.
type ActionPipeline struct {
	transitions     *TransitionService
	stables         *StableService
	log             logrus.FieldLogger
	ops             []pipelineOp
	defaultDate     time.Time
	continueOnError bool
}

type pipelineOp struct {
	name       string
	run        func(ctx context.Context) (any, error)
	compensate func(ctx context.Context) error
}

// PipelineResult reports per-operation outcomes by queue index. Partial
// success is always explicit, never silent.
type PipelineResult struct {
	Results map[int]any
	Errors  map[int]error
}

func (r *PipelineResult) Success() bool {
	return len(r.Errors) == 0
}

func (s *TransitionService) NewActionPipeline(stables *StableService, log logrus.FieldLogger) *ActionPipeline {
	return &ActionPipeline{
		transitions: s,
		stables:     stables,
		log:         log,
	}
}

func (p *ActionPipeline) WithDefaultDate(date time.Time) *ActionPipeline {
	p.defaultDate = date
	return p
}

func (p *ActionPipeline) ContinueOnError(continueOnError bool) *ActionPipeline {
	p.continueOnError = continueOnError
	return p
}

func (p *ActionPipeline) MergeStables(primary, secondary *stable.Stable, newName string) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: "merge-stables",
		run: func(ctx context.Context) (any, error) {
			merge := p.stables.MergeStables(primary, secondary).OnDate(p.defaultDate)
			if newName != "" {
				merge = merge.WithNewName(newName)
			}
			return merge.Execute(ctx)
		},
	})
	return p
}

func (p *ActionPipeline) SplitStable(original *stable.Stable, newName string) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: "split-stable",
		run: func(ctx context.Context) (any, error) {
			return p.stables.SplitStable(original, newName).OnDate(p.defaultDate).Execute(ctx)
		},
	})
	return p
}

// BatchEmploy registers the one batch with a default compensation: releasing
// whatever it employed, the inverse operation.
func (p *ActionPipeline) BatchEmploy(entities ...lifecycle.Entity) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: "batch-employ",
		run: func(ctx context.Context) (any, error) {
			return p.runBatch(ctx, entities, lifecycle.TransitionEmploy)
		},
		// The caller's snapshots still read as not employed once the batch
		// has run, so the release goes through the repositories directly
		// instead of refiltering on stale state.
		compensate: func(ctx context.Context) error {
			return p.releaseApplied(ctx, entities)
		},
	})
	return p
}

// releaseApplied writes a release period for each entity through its
// repository. Compensation only runs after the whole employ batch succeeded,
// so every entity here holds an open employment period even though the
// snapshots in hand predate it.
func (p *ActionPipeline) releaseApplied(ctx context.Context, entities []lifecycle.Entity) error {
	date := lifecycle.ResolveDate(p.transitions.clock, p.defaultDate)
	for _, e := range entities {
		repo, err := p.transitions.registry.StateFor(e.Type())
		if err != nil {
			return err
		}
		if err := repo.CreateRelease(ctx, e, date, ""); err != nil {
			return err
		}
	}
	return nil
}

func (p *ActionPipeline) BatchRelease(entities ...lifecycle.Entity) *ActionPipeline {
	return p.batchOp("batch-release", entities, lifecycle.TransitionRelease)
}

func (p *ActionPipeline) BatchRetire(entities ...lifecycle.Entity) *ActionPipeline {
	return p.batchOp("batch-retire", entities, lifecycle.TransitionRetire)
}

func (p *ActionPipeline) BatchSuspend(entities ...lifecycle.Entity) *ActionPipeline {
	return p.batchOp("batch-suspend", entities, lifecycle.TransitionSuspend)
}

func (p *ActionPipeline) BatchReinstate(entities ...lifecycle.Entity) *ActionPipeline {
	return p.batchOp("batch-reinstate", entities, lifecycle.TransitionReinstate)
}

func (p *ActionPipeline) batchOp(name string, entities []lifecycle.Entity, tr lifecycle.Transition) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: name,
		run: func(ctx context.Context) (any, error) {
			return p.runBatch(ctx, entities, tr)
		},
	})
	return p
}

func (p *ActionPipeline) runBatch(ctx context.Context, entities []lifecycle.Entity, tr lifecycle.Transition) (any, error) {
	applied := make([]lifecycle.Key, 0, len(entities))
	for _, e := range entities {
		if err := p.transitions.Transition(e, tr).OnDate(p.defaultDate).Execute(ctx); err != nil {
			return nil, err
		}
		applied = append(applied, lifecycle.KeyOf(e))
	}
	return applied, nil
}

// FilterAndBatch filters a collection by criteria, then applies tr to the
// filtered set.
func (p *ActionPipeline) FilterAndBatch(entities []lifecycle.Entity, criteria Criteria, tr lifecycle.Transition) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: "filter-and-batch",
		run: func(ctx context.Context) (any, error) {
			c := p.transitions.Collection(entities).OnDate(p.defaultDate)
			if len(criteria.Types) > 0 {
				c = c.FilterByType(criteria.Types...)
			}
			if len(criteria.Statuses) > 0 {
				allowed := make(map[lifecycle.Status]struct{}, len(criteria.Statuses))
				for _, st := range criteria.Statuses {
					allowed[st] = struct{}{}
				}
				c = c.FilterBy(func(e lifecycle.Entity) bool {
					_, ok := allowed[e.Status()]
					return ok
				})
			}
			if criteria.AvailableOnly {
				c = c.FilterByAvailability(true)
			}
			filtered, err := c.Get()
			if err != nil {
				return nil, err
			}
			return p.runBatch(ctx, filtered, tr)
		},
	})
	return p
}

// WithStableOperation queues an orchestration callback against the stable
// service.
func (p *ActionPipeline) WithStableOperation(name string, fn func(ctx context.Context, stables *StableService) (any, error)) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{
		name: name,
		run: func(ctx context.Context) (any, error) {
			return fn(ctx, p.stables)
		},
	})
	return p
}

// Custom queues an arbitrary callable with an optional compensating callable.
func (p *ActionPipeline) Custom(name string, run func(ctx context.Context) (any, error), compensate func(ctx context.Context) error) *ActionPipeline {
	p.ops = append(p.ops, pipelineOp{name: name, run: run, compensate: compensate})
	return p
}

// Execute runs every queued operation in order inside one ambient
// transaction. With ContinueOnError(false) the first failure compensates all
// previously succeeded operations in reverse order, then returns the original
// error, rolling the transaction back. With ContinueOnError(true) errors are
// recorded per index and execution continues.
func (p *ActionPipeline) Execute(ctx context.Context) (*PipelineResult, error) {
	result := &PipelineResult{
		Results: make(map[int]any),
		Errors:  make(map[int]error),
	}

	err := composables.InTx(ctx, func(txCtx context.Context) error {
		for i, op := range p.ops {
			value, opErr := op.run(txCtx)
			if opErr == nil {
				result.Results[i] = value
				metrics.PipelineOperations.WithLabelValues("success").Inc()
				continue
			}

			metrics.PipelineOperations.WithLabelValues("failure").Inc()
			result.Errors[i] = opErr
			p.log.WithError(opErr).WithFields(logrus.Fields{
				"operation": op.name,
				"index":     i,
			}).Warn("pipeline operation failed")

			if p.continueOnError {
				continue
			}

			p.compensate(txCtx, result, i)
			return opErr
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// compensate walks previously succeeded operations in reverse, invoking their
// compensating actions. Failures are logged and swallowed; the original error
// is what the caller sees.
func (p *ActionPipeline) compensate(ctx context.Context, result *PipelineResult, failedIndex int) {
	for i := failedIndex - 1; i >= 0; i-- {
		if _, succeeded := result.Results[i]; !succeeded {
			continue
		}
		op := p.ops[i]
		if op.compensate == nil {
			continue
		}
		if err := op.compensate(ctx); err != nil {
			p.log.WithError(lifecycle.ErrCompensationFailed.WithDetails("%s: %v", op.name, err)).
				WithFields(logrus.Fields{
					"operation": op.name,
					"index":     i,
				}).Error("compensating action failed")
		}
	}
}
