package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/ringside-io/roster/modules/roster/domain/aggregates/manager"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/stable"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/tagteam"
	"github.com/ringside-io/roster/modules/roster/domain/aggregates/wrestler"
	"github.com/ringside-io/roster/modules/roster/domain/lifecycle"
	"github.com/ringside-io/roster/modules/roster/infrastructure/persistence"
	"github.com/ringside-io/roster/modules/roster/services"
	"github.com/ringside-io/roster/pkg/composables"
	"github.com/ringside-io/roster/pkg/configuration"
	"github.com/ringside-io/roster/pkg/eventbus"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted roster scenario against the in-memory backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context())
		},
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func runDemo(ctx context.Context) error {
	conf := configuration.Use()
	logger := conf.Logger()
	clock := clockwork.NewRealClock()

	store := persistence.NewMemoryStore(clock)
	wrestlers := persistence.NewMemoryWrestlerRepository(store)
	managers := persistence.NewMemoryManagerRepository(store)
	referees := persistence.NewMemoryRefereeRepository(store)
	tagTeams := persistence.NewMemoryTagTeamRepository(store)
	stables := persistence.NewMemoryStableRepository(store)

	registry := services.NewRegistry().
		RegisterState(lifecycle.TypeWrestler, wrestlers).
		RegisterState(lifecycle.TypeManager, managers).
		RegisterState(lifecycle.TypeReferee, referees).
		RegisterState(lifecycle.TypeTagTeam, tagTeams).
		RegisterState(lifecycle.TypeStable, stables)

	bus := eventbus.NewEventPublisher(logger)
	bus.Subscribe(func(ev *services.TransitionApplied) {
		fmt.Printf("  %-9s %s (%s)\n", ev.Transition, ev.Entity.Name(), ev.Entity.Type())
	})

	svc := services.NewTransitionService(registry, bus, clock, logger)
	orchestrator := services.NewStableService(svc, stables, logger)

	ctx = composables.WithTransactor(ctx, persistence.NewMemoryTransactor(store))
	now := clock.Now()

	luna := must(wrestlers.Create(ctx, wrestler.New("Luna Cortez", "El Paso")))
	briggs := must(wrestlers.Create(ctx, wrestler.New("Tommy Briggs", "Duluth")))
	okafor := must(wrestlers.Create(ctx, wrestler.New("Ada Okafor", "Lagos")))
	voss := must(managers.Create(ctx, manager.New("Harlan Voss")))
	team := must(tagTeams.Create(ctx, tagteam.New("Border Collies")))

	vanguard, err := stables.Create(ctx, stable.New("The Vanguard"))
	if err != nil {
		return err
	}
	holdouts, err := stables.Create(ctx, stable.New("The Holdouts"))
	if err != nil {
		return err
	}

	for _, m := range []lifecycle.Entity{luna, briggs} {
		if err := stables.AddWrestler(ctx, vanguard, m, now); err != nil {
			return err
		}
	}
	if err := stables.AddManager(ctx, vanguard, voss, now); err != nil {
		return err
	}
	if err := stables.AddWrestler(ctx, holdouts, okafor, now); err != nil {
		return err
	}
	if err := stables.AddTagTeam(ctx, holdouts, team, now); err != nil {
		return err
	}

	fmt.Println("employing The Vanguard with member cascade:")
	vanguard, err = stables.GetByID(ctx, vanguard.ID())
	if err != nil {
		return err
	}
	if err := svc.Transition(vanguard, lifecycle.TransitionEmploy).
		WithCascade(svc.CascadeAllMembers()).
		Execute(ctx); err != nil {
		return err
	}

	fmt.Println("employing The Holdouts with member cascade:")
	holdouts, err = stables.GetByID(ctx, holdouts.ID())
	if err != nil {
		return err
	}
	if err := svc.Transition(holdouts, lifecycle.TransitionEmploy).
		WithCascade(svc.CascadeAllMembers()).
		Execute(ctx); err != nil {
		return err
	}

	fmt.Println("suspending Tommy Briggs:")
	fresh, err := wrestlers.GetByID(ctx, briggs.ID())
	if err != nil {
		return err
	}
	if err := svc.Transition(fresh, lifecycle.TransitionSuspend).Execute(ctx); err != nil {
		return err
	}

	fmt.Println("merging The Holdouts into The Vanguard:")
	vanguard, err = stables.GetByID(ctx, vanguard.ID())
	if err != nil {
		return err
	}
	holdouts, err = stables.GetByID(ctx, holdouts.ID())
	if err != nil {
		return err
	}
	merged, err := orchestrator.MergeStables(vanguard, holdouts).
		WithNewName("The Vanguard Unlimited").
		Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("merged stable %q now has %d members\n", merged.Name(), len(merged.CurrentMembers()))

	roster := make([]lifecycle.Entity, 0)
	for _, t := range []lifecycle.EntityType{
		lifecycle.TypeWrestler, lifecycle.TypeManager, lifecycle.TypeReferee,
		lifecycle.TypeTagTeam, lifecycle.TypeStable,
	} {
		roster = append(roster, store.All(t)...)
	}
	stats, err := svc.Collection(roster).GetStatistics()
	if err != nil {
		return err
	}
	fmt.Printf(
		"roster: %d total, %d employed, %d suspended, %d retired, %d available\n",
		stats.Total, stats.Employed, stats.Suspended, stats.Retired, stats.Available,
	)
	return nil
}
