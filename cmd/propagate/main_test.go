package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-socialnet/pkg/config"
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/graphio"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "g.tsv", "a\tb\nb\tc\n")
	writeFile(t, dir, "info.tsv", "p1\ta\nbroken\np2\tnobody\n")
	writeFile(t, dir, "run.yaml", `
graph: {path: g.tsv}
information: {path: info.tsv}
protocol: {name: independent-cascade, probability: 1}
output: {log: log.tsv.sz, json: run.json}
`)

	cfg, err := config.Load(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	logger := logging.NewNopLogger()
	reg := metrics.NewRegistry()
	err = run(context.Background(), cfg, logger, reg, graphio.ParseString, func() (*graph.Graph[string], error) {
		return loadGraph(cfg, logger, reg, graphio.ParseString)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run.json"))
	if err != nil {
		t.Fatalf("reading JSON output: %v", err)
	}
	if !strings.Contains(string(data), "no_more_propagation") {
		t.Errorf("expected the run to stop on its own, got %s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "log.tsv.sz")); err != nil {
		t.Errorf("expected the compressed log to exist: %v", err)
	}
}

func TestRun_GeneratedGraph(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "info.tsv", "p1\t0\n")
	writeFile(t, dir, "run.yaml", `
graph: {ids: int, generate: {kind: complete, vertices: 5}}
information: {path: info.tsv}
protocol: {name: push, num_own: -1, wait_time: 0, orientation: und}
stop: {max_iterations: 10}
`)

	cfg, err := config.Load(filepath.Join(dir, "run.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	logger := logging.NewNopLogger()
	err = run(context.Background(), cfg, logger, metrics.NewRegistry(), graphio.ParseInt, func() (*graph.Graph[int], error) {
		return cfg.Graph.Generate.Build(cfg.Graph, nil, logger)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestWriteOutput_EmptyPath(t *testing.T) {
	called := false
	err := writeOutput("", func(_ io.Writer) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Errorf("an empty path should write nothing, got err=%v called=%v", err, called)
	}
}
