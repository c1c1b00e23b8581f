package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// Neighbourhood yields the neighbours of v under orientation o in index
// order. A missing vertex has an empty neighbourhood.
func (g *Graph[V]) Neighbourhood(v V, o Orientation) iter.Seq[V] {
	return func(yield func(V) bool) {
		idx := g.vertices.Object2Idx(v)
		if idx == index.NotFound {
			return
		}
		for n := range g.edges.Neighbours(idx, o) {
			if !yield(g.object(n.Idx)) {
				return
			}
		}
	}
}

// NeighbourhoodWeights yields (neighbour, weight) pairs of v under o.
func (g *Graph[V]) NeighbourhoodWeights(v V, o Orientation) iter.Seq2[V, float64] {
	return func(yield func(V, float64) bool) {
		idx := g.vertices.Object2Idx(v)
		if idx == index.NotFound {
			return
		}
		for n := range g.edges.Neighbours(idx, o) {
			if !yield(g.object(n.Idx), n.Weight) {
				return
			}
		}
	}
}

// NeighbourhoodTypes yields (neighbour, edge type) pairs of v under o.
func (g *Graph[V]) NeighbourhoodTypes(v V, o Orientation) iter.Seq2[V, int] {
	return func(yield func(V, int) bool) {
		idx := g.vertices.Object2Idx(v)
		if idx == index.NotFound {
			return
		}
		for n := range g.edges.Neighbours(idx, o) {
			if !yield(g.object(n.Idx), n.Type) {
				return
			}
		}
	}
}

// NeighbourhoodSize counts the distinct neighbours of v under o.
func (g *Graph[V]) NeighbourhoodSize(v V, o Orientation) int {
	idx := g.vertices.Object2Idx(v)
	if idx == index.NotFound {
		return 0
	}
	return g.edges.Degree(idx, o)
}

// NeighbourhoodIdx yields neighbour indices of the vertex at idx. It is the
// allocation-free path used by algorithms that work on indices.
func (g *Graph[V]) NeighbourhoodIdx(idx int, o Orientation) iter.Seq[int] {
	return nodesOf(g.edges.Neighbours(idx, o))
}

// NeighbourhoodSizeIdx counts the distinct neighbours of the vertex at idx.
func (g *Graph[V]) NeighbourhoodSizeIdx(idx int, o Orientation) int {
	return g.edges.Degree(idx, o)
}

// Degree returns the total degree of v: in-degree plus out-degree on
// directed graphs, the neighbourhood size on undirected graphs. Degrees
// count distinct neighbours; use NumEdgesBetween for multiplicities.
func (g *Graph[V]) Degree(v V) int {
	idx := g.vertices.Object2Idx(v)
	if idx == index.NotFound {
		return 0
	}
	if !g.IsDirected() {
		return g.edges.NeighbourCount(idx)
	}
	return g.edges.IncidentCount(idx) + g.edges.AdjacentCount(idx)
}

// DegreeOf returns the degree of v under o. On directed graphs Und counts
// the union of predecessors and successors, so a reciprocal neighbour is
// counted once.
func (g *Graph[V]) DegreeOf(v V, o Orientation) int {
	return g.NeighbourhoodSize(v, o)
}

// InDegree returns the number of predecessors of v.
func (g *Graph[V]) InDegree(v V) int { return g.NeighbourhoodSize(v, In) }

// OutDegree returns the number of successors of v.
func (g *Graph[V]) OutDegree(v V) int { return g.NeighbourhoodSize(v, Out) }

func (g *Graph[V]) object(idx int) V {
	v, _ := g.vertices.Idx2Object(idx)
	return v
}
