package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

func TestParseArgs(t *testing.T) {
	opts, ok := parseArgs([]string{"-dendogram", "m.tsv", "-k", "3", "g.tsv", "out.tsv", "5", "7"}, io.Discard)
	if !ok {
		t.Fatal("expected valid arguments")
	}
	if opts.dendogram != "m.tsv" || opts.k != 3 || opts.maxIterations != 5 || opts.seed != 7 {
		t.Errorf("unexpected options %+v", opts)
	}

	for _, args := range [][]string{
		{"g.tsv"},
		{"g.tsv", "out.tsv", "zero"},
		{"g.tsv", "out.tsv", "5", "-1"},
		{"-k", "0", "g.tsv", "out.tsv"},
		{"-unknown", "g.tsv", "out.tsv"},
	} {
		var stderr bytes.Buffer
		if _, ok := parseArgs(args, &stderr); ok {
			t.Errorf("expected %v to be rejected", args)
		}
		if stderr.Len() == 0 {
			t.Errorf("expected usage on stderr for %v", args)
		}
	}
}

func TestDetectAndWrite(t *testing.T) {
	g := graph.NewUndirected[string](false)
	g.AddEdge("a", "b")
	g.AddEdge("c", "d")

	merges := filepath.Join(t.TempDir(), "merges.tsv")
	if err := os.WriteFile(merges, []byte("0\t1\t4\n2\t3\t5\n4\t5\t6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := options{dendogram: merges, k: 2}
	result, err := detect(g, opts, metrics.NewRegistry(), logging.NewNopLogger())
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	var buf bytes.Buffer
	if err := writePartition(&buf, g, result); err != nil {
		t.Fatalf("writePartition failed: %v", err)
	}
	if want := "a\t0\nb\t0\nc\t1\nd\t1\n"; buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	opts = options{maxIterations: 10, seed: 1}
	result, err = detect(g, opts, metrics.NewRegistry(), logging.NewNopLogger())
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if len(result.Communities) != 2 {
		t.Errorf("expected 2 communities from label propagation, got %d", len(result.Communities))
	}
}
