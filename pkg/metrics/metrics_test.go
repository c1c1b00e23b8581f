package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.GraphVerticesTotal == nil || r.PiecesTotal == nil || r.AlgorithmRunsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordGraphAndRecords(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(10, 25)
	r.RecordRecords("edge", 25, 2)
	r.RecordRecords("edge", 5, 0)

	if got := gaugeValue(t, r.GraphVerticesTotal); got != 10 {
		t.Errorf("vertices = %v, want 10", got)
	}
	if got := gaugeValue(t, r.GraphEdgesTotal); got != 25 {
		t.Errorf("edges = %v, want 25", got)
	}
	if got := counterValue(t, r.RecordsTotal.WithLabelValues("edge", "ok")); got != 30 {
		t.Errorf("ok records = %v, want 30", got)
	}
	if got := counterValue(t, r.RecordsTotal.WithLabelValues("edge", "skipped")); got != 2 {
		t.Errorf("skipped records = %v, want 2", got)
	}
}

func TestRecordIteration(t *testing.T) {
	r := NewRegistry()
	r.RecordIteration("push", time.Millisecond, 3, 3, 2, 1)
	r.RecordIteration("push", time.Millisecond, 1, 1, 4, 0)

	if got := counterValue(t, r.SimulationIterationsTotal.WithLabelValues("push")); got != 2 {
		t.Errorf("iterations = %v, want 2", got)
	}
	if got := counterValue(t, r.PiecesTotal.WithLabelValues("push", EventPropagated)); got != 4 {
		t.Errorf("propagated = %v, want 4", got)
	}
	if got := counterValue(t, r.PiecesTotal.WithLabelValues("push", EventReceived)); got != 6 {
		t.Errorf("received = %v, want 6", got)
	}
	if got := gaugeValue(t, r.ActiveUsers); got != 1 {
		t.Errorf("active users = %v, want 1", got)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "socialnet_iteration_duration_seconds" {
			found = mf.GetMetric()[0].GetHistogram().GetSampleCount() == 2
		}
	}
	if !found {
		t.Error("iteration duration histogram missing or wrong sample count")
	}
}

func TestRecordRunAndAlgorithm(t *testing.T) {
	r := NewRegistry()
	r.RecordRun("ic", "max_iterations")
	r.RecordAlgorithm("jaccard", nil, time.Millisecond)
	r.RecordAlgorithm("jaccard", errors.New("x"), time.Millisecond)

	if got := counterValue(t, r.SimulationRunsTotal.WithLabelValues("ic", "max_iterations")); got != 1 {
		t.Errorf("runs = %v, want 1", got)
	}
	if got := counterValue(t, r.AlgorithmRunsTotal.WithLabelValues("jaccard", "error")); got != 1 {
		t.Errorf("errored runs = %v, want 1", got)
	}
}

func TestRecordProcess(t *testing.T) {
	r := NewRegistry()
	r.RecordProcess(time.Now().Add(-time.Second))
	if got := gaugeValue(t, r.ElapsedSeconds); got < 1 {
		t.Errorf("elapsed = %v, want >= 1", got)
	}
	if got := gaugeValue(t, r.Goroutines); got < 1 {
		t.Errorf("goroutines = %v, want >= 1", got)
	}
	if got := gaugeValue(t, r.HeapAllocBytes); got <= 0 {
		t.Errorf("heap alloc = %v, want > 0", got)
	}
	if got := gaugeValue(t, r.HeapObjects); got <= 0 {
		t.Errorf("heap objects = %v, want > 0", got)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"socialnet_command_elapsed_seconds",
		"socialnet_goroutines",
		"socialnet_heap_alloc_bytes",
		"socialnet_heap_objects",
	} {
		if !names[want] {
			t.Errorf("gauge %s not registered", want)
		}
	}
}
