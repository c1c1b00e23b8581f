package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Piece lifecycle events counted by RecordIteration.
const (
	EventPropagated = "propagated"
	EventReceived   = "received"
	EventDiscarded  = "discarded"
)

// RecordGraph sets the size gauges of the loaded graph
func (r *Registry) RecordGraph(vertices, edges int) {
	r.GraphVerticesTotal.Set(float64(vertices))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordRecords counts records read and skipped by a reader
func (r *Registry) RecordRecords(kind string, read, skipped int) {
	r.RecordsTotal.WithLabelValues(kind, "ok").Add(float64(read))
	r.RecordsTotal.WithLabelValues(kind, "skipped").Add(float64(skipped))
}

// RecordLoad records the time spent reading one input file
func (r *Registry) RecordLoad(format string, duration time.Duration) {
	r.LoadDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordIteration records one simulation iteration
func (r *Registry) RecordIteration(protocol string, duration time.Duration, active, propagated, received, discarded int) {
	r.SimulationIterationsTotal.WithLabelValues(protocol).Inc()
	r.IterationDuration.WithLabelValues(protocol).Observe(duration.Seconds())
	r.PiecesTotal.WithLabelValues(protocol, EventPropagated).Add(float64(propagated))
	r.PiecesTotal.WithLabelValues(protocol, EventReceived).Add(float64(received))
	r.PiecesTotal.WithLabelValues(protocol, EventDiscarded).Add(float64(discarded))
	r.ActiveUsers.Set(float64(active))
}

// RecordRun records a finished simulation and the reason it stopped
func (r *Registry) RecordRun(protocol, reason string) {
	r.SimulationRunsTotal.WithLabelValues(protocol, reason).Inc()
}

// RecordAlgorithm records a graph algorithm execution
func (r *Registry) RecordAlgorithm(name string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.AlgorithmRunsTotal.WithLabelValues(name, status).Inc()
	r.AlgorithmDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (r *Registry) initProcessMetrics() {
	auto := promauto.With(r.registry)
	r.ElapsedSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_command_elapsed_seconds",
		Help: "Wall-clock seconds the command has spent loading, simulating and writing",
	})
	r.Goroutines = auto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_goroutines",
		Help: "Goroutines alive when the command finished",
	})
	r.HeapAllocBytes = auto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_heap_alloc_bytes",
		Help: "Heap bytes held by the graph, the simulation state and the result",
	})
	r.HeapObjects = auto.NewGauge(prometheus.GaugeOpts{
		Name: "socialnet_heap_objects",
		Help: "Live heap objects when the command finished",
	})
}

// RecordProcess sets the process gauges for a command started at start
func (r *Registry) RecordProcess(start time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ElapsedSeconds.Set(time.Since(start).Seconds())
	r.Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.HeapAllocBytes.Set(float64(m.HeapAlloc))
	r.HeapObjects.Set(float64(m.HeapObjects))
}
