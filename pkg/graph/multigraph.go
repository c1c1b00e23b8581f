package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// NumEdgesBetween returns the number of parallel edges orig->dest. On
// simple graphs it is 1 when the edge exists and 0 otherwise.
func (g *Graph[V]) NumEdgesBetween(orig, dest V) int {
	o, d, ok := g.pair(orig, dest)
	if !ok {
		return 0
	}
	if g.multi != nil {
		return g.multi.NumEdgesBetween(o, d)
	}
	if g.edges.ContainsEdge(o, d) {
		return 1
	}
	return 0
}

// EdgeWeights returns the weights of every parallel edge orig->dest in
// insertion order. Simple graphs return at most one weight.
func (g *Graph[V]) EdgeWeights(orig, dest V) []float64 {
	o, d, ok := g.pair(orig, dest)
	if !ok {
		return nil
	}
	if g.multi != nil {
		return g.multi.EdgeWeights(o, d)
	}
	if w, ok := g.edges.EdgeWeight(o, d); ok {
		return []float64{w}
	}
	return nil
}

// EdgeTypes returns the types of every parallel edge orig->dest in
// insertion order. Simple graphs return at most one type.
func (g *Graph[V]) EdgeTypes(orig, dest V) []int {
	o, d, ok := g.pair(orig, dest)
	if !ok {
		return nil
	}
	if g.multi != nil {
		return g.multi.EdgeTypes(o, d)
	}
	if t, ok := g.edges.EdgeType(o, d); ok {
		return []int{t}
	}
	return nil
}

// NeighbourhoodMultiWeights yields each neighbour of v with the weights of
// all parallel edges linking it. It fails with ErrNotMultigraph on simple
// graphs and ErrUnsupportedOperation for Und on directed multigraphs.
func (g *Graph[V]) NeighbourhoodMultiWeights(v V, o Orientation) (iter.Seq2[V, []float64], error) {
	seq, err := g.multiNeighbours("NeighbourhoodMultiWeights", v, o)
	if err != nil {
		return nil, err
	}
	return func(yield func(V, []float64) bool) {
		for n := range seq {
			if !yield(g.object(n.Idx), n.Weights) {
				return
			}
		}
	}, nil
}

// NeighbourhoodMultiTypes yields each neighbour of v with the types of all
// parallel edges linking it. Errors as NeighbourhoodMultiWeights.
func (g *Graph[V]) NeighbourhoodMultiTypes(v V, o Orientation) (iter.Seq2[V, []int], error) {
	seq, err := g.multiNeighbours("NeighbourhoodMultiTypes", v, o)
	if err != nil {
		return nil, err
	}
	return func(yield func(V, []int) bool) {
		for n := range seq {
			if !yield(g.object(n.Idx), n.Types) {
				return
			}
		}
	}, nil
}

func (g *Graph[V]) multiNeighbours(op string, v V, o Orientation) (iter.Seq[MultiNeighbour], error) {
	if g.multi == nil {
		return nil, NewError(op).Vertex(v).Cause(ErrNotMultigraph).Err()
	}
	idx := g.vertices.Object2Idx(v)
	if idx == index.NotFound {
		if _, err := g.multi.MultiNeighbours(0, o); err != nil {
			return nil, err
		}
		return func(func(MultiNeighbour) bool) {}, nil
	}
	return g.multi.MultiNeighbours(idx, o)
}
