// Package metrics exposes prometheus counters for the lifecycle engine and a
// promhttp controller to scrape them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TransitionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_transitions_applied_total",
			Help: "Lifecycle transitions applied, by transition and entity type.",
		},
		[]string{"transition", "entity_type"},
	)
	TransitionsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_transitions_failed_total",
			Help: "Lifecycle transitions rejected or failed, by transition.",
		},
		[]string{"transition"},
	)
	CascadesRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_cascades_run_total",
			Help: "Cascade strategy invocations, by transition.",
		},
		[]string{"transition"},
	)
	PipelineOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_pipeline_operations_total",
			Help: "Action pipeline operations executed, by outcome.",
		},
		[]string{"outcome"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(TransitionsApplied, TransitionsFailed, CascadesRun, PipelineOperations)
}
