// Package metrics holds the process-wide Prometheus instruments.
// promauto registers them on the default registry, which the web
// server exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PuzzlesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nonogrid_puzzles_issued_total",
		Help: "Puzzles handed out, by difficulty and by whether they came from a curated pool, live generation, or the daily schedule",
	}, []string{"difficulty", "source"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nonogrid_submissions_total",
		Help: "Solve submissions, by outcome and rejection reason (empty reason when accepted)",
	}, []string{"outcome", "reason"})

	SolverPasses = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nonogrid_solver_passes",
		Help:    "Row/column sweeps a propagation solve took before finishing or sticking",
		Buckets: []float64{1, 2, 4, 6, 8, 12, 16, 24, 32, 48},
	})

	GenerationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nonogrid_generation_seconds",
		Help:    "Wall time to synthesize one grid and vet it for guess-free solvability",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	LiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nonogrid_live_clients",
		Help: "Currently connected live feed subscribers",
	})
)
