package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialnet_simulation_runs_total",
			Help: "Completed simulation runs by stop reason",
		},
		[]string{"protocol", "reason"},
	)

	r.SimulationIterationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialnet_simulation_iterations_total",
			Help: "Simulation iterations executed",
		},
		[]string{"protocol"},
	)

	r.PiecesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialnet_information_pieces_total",
			Help: "Information pieces by lifecycle event",
		},
		[]string{"protocol", "event"},
	)

	r.IterationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialnet_iteration_duration_seconds",
			Help:    "Wall time of one simulation iteration",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"protocol"},
	)

	r.ActiveUsers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "socialnet_simulation_active_users",
			Help: "Users that propagated at least one piece in the last iteration",
		},
	)
}
