package generator

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// ErdosRenyi includes every admissible pair independently with probability
// p. Pairs are tried in vertex-list order, ordered pairs when directed.
type ErdosRenyi[V comparable] struct {
	base[V]
	rng *rand.Rand
	p   float64
}

func NewErdosRenyi[V comparable](variant Variant, rng *rand.Rand, opts ...Option) *ErdosRenyi[V] {
	return &ErdosRenyi[V]{base: newBase[V]("ErdosRenyi", variant, opts), rng: rng}
}

// Configure sets the vertex list and the edge probability.
func (e *ErdosRenyi[V]) Configure(vertices []V, p float64) error {
	if err := e.setVertices(vertices); err != nil {
		return err
	}
	if p < 0 || p > 1 {
		return e.bad("p=%g not in [0,1]", p)
	}
	if e.rng == nil {
		return e.bad("rng is required")
	}
	e.p = p
	e.configured = true
	return nil
}

func (e *ErdosRenyi[V]) Generate() (*graph.Graph[V], error) {
	g, timer, err := e.start()
	if err != nil {
		return nil, err
	}
	for i, u := range e.vertices {
		for j, v := range e.vertices {
			if i == j || (!e.variant.Directed && j < i) {
				continue
			}
			if e.rng.Float64() < e.p {
				g.AddEdge(u, v)
			}
		}
	}
	return finish(g, timer)
}

// BarabasiAlbert grows a scale-free graph by preferential attachment. The
// first m0 vertices form a complete seed graph; every later vertex links to
// m distinct earlier vertices chosen with probability proportional to their
// degree. When directed, new edges point from the new vertex.
type BarabasiAlbert[V comparable] struct {
	base[V]
	rng   *rand.Rand
	m0, m int
}

func NewBarabasiAlbert[V comparable](variant Variant, rng *rand.Rand, opts ...Option) *BarabasiAlbert[V] {
	return &BarabasiAlbert[V]{base: newBase[V]("BarabasiAlbert", variant, opts), rng: rng}
}

// Configure sets the vertex list, the seed size m0 and the number m of
// edges added per new vertex. It requires 1 <= m <= m0 <= len(vertices).
func (b *BarabasiAlbert[V]) Configure(vertices []V, m0, m int) error {
	if err := b.setVertices(vertices); err != nil {
		return err
	}
	switch {
	case m0 < 1:
		return b.bad("m0=%d < 1", m0)
	case m < 1 || m > m0:
		return b.bad("m=%d not in [1,%d]", m, m0)
	case m0 > len(vertices):
		return b.bad("m0=%d exceeds %d vertices", m0, len(vertices))
	case b.rng == nil:
		return b.bad("rng is required")
	}
	b.m0, b.m = m0, m
	b.configured = true
	return nil
}

func (b *BarabasiAlbert[V]) Generate() (*graph.Graph[V], error) {
	g, timer, err := b.start()
	if err != nil {
		return nil, err
	}

	// endpoints holds one entry per edge end, so uniform draws from it are
	// degree-proportional draws over vertex positions.
	var endpoints []int
	for i := range b.m0 {
		for j := i + 1; j < b.m0; j++ {
			g.AddEdge(b.vertices[i], b.vertices[j])
			endpoints = append(endpoints, i, j)
		}
	}

	chosen := make(map[int]struct{}, b.m)
	targets := make([]int, 0, b.m)
	for n := b.m0; n < len(b.vertices); n++ {
		clear(chosen)
		targets = targets[:0]
		for len(targets) < b.m {
			var t int
			if len(endpoints) == 0 {
				t = b.rng.IntN(n)
			} else {
				t = endpoints[b.rng.IntN(len(endpoints))]
			}
			if _, dup := chosen[t]; dup {
				continue
			}
			chosen[t] = struct{}{}
			targets = append(targets, t)
		}
		for _, t := range targets {
			g.AddEdge(b.vertices[n], b.vertices[t])
			endpoints = append(endpoints, n, t)
		}
	}
	return finish(g, timer)
}
