package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph Metrics
	GraphVerticesTotal prometheus.Gauge
	GraphEdgesTotal    prometheus.Gauge
	RecordsTotal       *prometheus.CounterVec
	LoadDuration       *prometheus.HistogramVec

	// Simulation Metrics
	SimulationRunsTotal       *prometheus.CounterVec
	SimulationIterationsTotal *prometheus.CounterVec
	PiecesTotal               *prometheus.CounterVec
	IterationDuration         *prometheus.HistogramVec
	ActiveUsers               prometheus.Gauge

	// Algorithm Metrics
	AlgorithmRunsTotal *prometheus.CounterVec
	AlgorithmDuration  *prometheus.HistogramVec

	// Process Metrics
	ElapsedSeconds prometheus.Gauge
	Goroutines     prometheus.Gauge
	HeapAllocBytes prometheus.Gauge
	HeapObjects    prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initSimulationMetrics()
	r.initAlgorithmMetrics()
	r.initProcessMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
