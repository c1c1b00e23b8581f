package generator

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
)

func vertices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func edgePairs(g *graph.Graph[int]) [][2]int {
	var out [][2]int
	for e := range g.Edges() {
		out = append(out, [2]int{e.From, e.To})
	}
	return out
}

func TestGenerate_NotConfigured(t *testing.T) {
	gens := map[string]Generator[int]{
		"empty":    NewEmptyGraph[int](Variant{}),
		"complete": NewCompleteGraph[int](Variant{}),
		"erdos":    NewErdosRenyi[int](Variant{}, seeded(1)),
		"barabasi": NewBarabasiAlbert[int](Variant{}, seeded(1)),
	}
	for name, gen := range gens {
		if _, err := gen.Generate(); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: expected ErrNotConfigured, got %v", name, err)
		}
	}
}

func TestConfigure_BadParameters(t *testing.T) {
	empty := NewEmptyGraph[int](Variant{})
	if err := empty.Configure([]int{1, 2, 1}); !errors.Is(err, ErrBadConfigured) {
		t.Errorf("duplicate vertices: expected ErrBadConfigured, got %v", err)
	}

	er := NewErdosRenyi[int](Variant{}, seeded(1))
	if err := er.Configure(vertices(3), 1.5); !errors.Is(err, ErrBadConfigured) {
		t.Errorf("p=1.5: expected ErrBadConfigured, got %v", err)
	}
	if err := NewErdosRenyi[int](Variant{}, nil).Configure(vertices(3), 0.5); !errors.Is(err, ErrBadConfigured) {
		t.Errorf("nil rng: expected ErrBadConfigured, got %v", err)
	}

	ba := NewBarabasiAlbert[int](Variant{}, seeded(1))
	for _, tc := range []struct{ n, m0, m int }{{10, 0, 1}, {10, 3, 0}, {10, 3, 4}, {2, 3, 1}} {
		if err := ba.Configure(vertices(tc.n), tc.m0, tc.m); !errors.Is(err, ErrBadConfigured) {
			t.Errorf("n=%d m0=%d m=%d: expected ErrBadConfigured, got %v", tc.n, tc.m0, tc.m, err)
		}
	}

	// A failed reconfiguration leaves the generator unconfigured.
	if err := er.Configure(vertices(3), 0.5); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	_ = er.Configure(vertices(3), -1)
	if _, err := er.Generate(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured after a bad Configure, got %v", err)
	}
}

func TestEmptyGraph(t *testing.T) {
	gen := NewEmptyGraph[string](Variant{Directed: true}, WithLogger(logging.NewNopLogger()))
	if err := gen.Configure([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	g, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if g.VertexCount() != 3 || g.EdgeCount() != 0 || !g.IsDirected() {
		t.Errorf("expected 3 isolated vertices in a directed graph, got %d vertices, %d edges",
			g.VertexCount(), g.EdgeCount())
	}
}

func TestCompleteGraph(t *testing.T) {
	tests := []struct {
		directed bool
		edges    int
	}{
		{false, 10},
		{true, 20},
	}
	for _, tt := range tests {
		gen := NewCompleteGraph[int](Variant{Directed: tt.directed})
		if err := gen.Configure(vertices(5)); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		g, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if g.EdgeCount() != tt.edges {
			t.Errorf("directed=%v: expected %d edges, got %d", tt.directed, tt.edges, g.EdgeCount())
		}
		for v := range 5 {
			if g.ContainsEdge(v, v) {
				t.Errorf("unexpected self-loop on %d", v)
			}
		}
	}
}

func TestErdosRenyi(t *testing.T) {
	for _, tc := range []struct {
		p     float64
		edges int
	}{{0, 0}, {1, 15}} {
		gen := NewErdosRenyi[int](Variant{}, seeded(3))
		if err := gen.Configure(vertices(6), tc.p); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		g, _ := gen.Generate()
		if g.EdgeCount() != tc.edges {
			t.Errorf("p=%g: expected %d edges, got %d", tc.p, tc.edges, g.EdgeCount())
		}
	}

	build := func() [][2]int {
		gen := NewErdosRenyi[int](Variant{Directed: true}, seeded(42))
		if err := gen.Configure(vertices(20), 0.3); err != nil {
			t.Fatalf("Configure failed: %v", err)
		}
		g, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		return edgePairs(g)
	}
	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d edges", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different edges at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBarabasiAlbert(t *testing.T) {
	const n, m0, m = 50, 3, 2
	gen := NewBarabasiAlbert[int](Variant{}, seeded(9))
	if err := gen.Configure(vertices(n), m0, m); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	g, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if want := m0*(m0-1)/2 + (n-m0)*m; g.EdgeCount() != want {
		t.Errorf("expected %d edges, got %d", want, g.EdgeCount())
	}
	for v := range n {
		if g.Degree(v) < m {
			t.Errorf("vertex %d has degree %d < %d", v, g.Degree(v), m)
		}
	}

	single := NewBarabasiAlbert[int](Variant{Directed: true}, seeded(9))
	if err := single.Configure(vertices(10), 1, 1); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	tree, err := single.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if tree.EdgeCount() != 9 {
		t.Errorf("expected a tree with 9 edges, got %d", tree.EdgeCount())
	}
	for v := 1; v < 10; v++ {
		if tree.OutDegree(v) != 1 {
			t.Errorf("vertex %d: expected out-degree 1, got %d", v, tree.OutDegree(v))
		}
	}
}
