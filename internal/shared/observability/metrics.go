package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "impacted_graph_nodes_total",
		Help: "Number of modules in the affects graph after pruning.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "impacted_graph_edges_total",
		Help: "Number of edges in the affects graph after pruning.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "impacted_analysis_seconds",
		Help:    "Time spent on each analysis phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "impacted_runs_total",
		Help: "Total analysis runs, labelled by git mode.",
	}, []string{"git_mode"})

	ConservativeFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "impacted_conservative_fallbacks_total",
		Help: "Times a dangling production module forced selection of every known test module.",
	})

	DanglingModulesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "impacted_dangling_modules_total",
		Help: "Changed modules that were absent from the affects graph.",
	})

	ImpactedTestsLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "impacted_tests_last_run",
		Help: "Number of impacted test modules found by the most recent run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "impacted_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
