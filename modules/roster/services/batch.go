package services

import (
	"context"
	"time"

	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/pkg/composables"
)

// Convenience batch entry points: one transition pipeline per entity, in
// input order, inside one ambient transaction. Unlike cascades, these do not
// skip ineligible entities; a guard failure aborts the whole batch.

func (s *TransitionService) applyMany(ctx context.Context, entities []lifecycle.Entity, tr lifecycle.Transition, date time.Time) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		for _, e := range entities {
			if err := s.Transition(e, tr).OnDate(date).Execute(txCtx); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TransitionService) EmployMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionEmploy, date)
}

func (s *TransitionService) SuspendMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionSuspend, date)
}

func (s *TransitionService) InjureMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionInjure, date)
}

func (s *TransitionService) RetireMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionRetire, date)
}

func (s *TransitionService) ReleaseMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionRelease, date)
}

func (s *TransitionService) ReinstateMany(ctx context.Context, entities []lifecycle.Entity, date time.Time) error {
	return s.applyMany(ctx, entities, lifecycle.TransitionReinstate, date)
}
