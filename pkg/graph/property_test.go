package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyVertices = 10

func buildFromPairs(g *Graph[int], origs, dests []int) {
	steps := min(len(origs), len(dests))
	for i := 0; i < steps; i++ {
		g.AddWeightedEdge(origs[i], dests[i], float64(i+1))
	}
}

func setOf(seq func(func(int) bool)) map[int]bool {
	out := make(map[int]bool)
	for v := range seq {
		out[v] = true
	}
	return out
}

// TestGraphInvariants checks the structural invariants every edge container
// variant must keep for arbitrary edge sequences.
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	vertex := gen.IntRange(0, propertyVertices-1)

	properties.Property("directed degree equals in-degree plus out-degree", prop.ForAll(
		func(origs, dests []int, multi bool) bool {
			g := NewOf[int](true, true, multi)
			buildFromPairs(g, origs, dests)
			for v := range g.Nodes() {
				if g.Degree(v) != g.InDegree(v)+g.OutDegree(v) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(vertex), gen.SliceOf(vertex), gen.Bool(),
	))

	properties.Property("undirected degree equals neighbour count", prop.ForAll(
		func(origs, dests []int, multi bool) bool {
			g := NewOf[int](false, false, multi)
			buildFromPairs(g, origs, dests)
			for v := range g.Nodes() {
				count := 0
				for range g.Neighbourhood(v, Und) {
					count++
				}
				if g.Degree(v) != count || g.Degree(v) != g.EdgeStore().NeighbourCount(g.NodeIdx(v)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(vertex), gen.SliceOf(vertex), gen.Bool(),
	))

	properties.Property("mutual is the intersection of in and out", prop.ForAll(
		func(origs, dests []int) bool {
			g := NewDirected[int](false)
			buildFromPairs(g, origs, dests)
			for v := range g.Nodes() {
				in := setOf(g.Neighbourhood(v, In))
				out := setOf(g.Neighbourhood(v, Out))
				mutual := setOf(g.Neighbourhood(v, Mutual))
				for u := range mutual {
					if !in[u] || !out[u] {
						return false
					}
				}
				for u := range in {
					if out[u] && !mutual[u] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(vertex), gen.SliceOf(vertex),
	))

	properties.Property("every edge is visible from both endpoints", prop.ForAll(
		func(origs, dests []int, directed bool) bool {
			g := NewOf[int](directed, false, false)
			buildFromPairs(g, origs, dests)
			for e := range g.Edges() {
				if !setOf(g.Neighbourhood(e.From, Out))[e.To] {
					return false
				}
				if !setOf(g.Neighbourhood(e.To, In))[e.From] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(vertex), gen.SliceOf(vertex), gen.Bool(),
	))

	properties.Property("multigraph multiplicity matches weight and type lists", prop.ForAll(
		func(origs, dests []int, directed bool) bool {
			g := NewOf[int](directed, true, true)
			buildFromPairs(g, origs, dests)
			total := 0
			for o := range g.Nodes() {
				for d := range g.Neighbourhood(o, Out) {
					n := g.NumEdgesBetween(o, d)
					if n == 0 || n != len(g.EdgeWeights(o, d)) || n != len(g.EdgeTypes(o, d)) {
						return false
					}
					if directed || o <= d {
						total += n
					}
				}
			}
			return total == g.EdgeCount() && total == min(len(origs), len(dests))
		},
		gen.SliceOf(vertex), gen.SliceOf(vertex), gen.Bool(),
	))

	properties.TestingRun(t)
}
