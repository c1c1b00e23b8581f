// Package algorithms provides link prediction, edge and vertex metrics and
// community detection over graph.Graph. Every routine works on dense vertex
// indices and sorted neighbour lists, so results are deterministic.
package algorithms

import (
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// neighbourSet returns the sorted neighbour indices of idx under o,
// excluding idx itself.
func neighbourSet[V comparable](g *graph.Graph[V], idx int, o graph.Orientation) []int {
	out := make([]int, 0, g.NeighbourhoodSizeIdx(idx, o))
	for n := range g.NeighbourhoodIdx(idx, o) {
		if n != idx {
			out = append(out, n)
		}
	}
	return out
}

// intersect returns the common elements of two sorted index lists.
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// unionSize returns |a ∪ b| for two sorted index lists.
func unionSize(a, b []int) int {
	return len(a) + len(b) - len(intersect(a, b))
}

// without removes x from a sorted list, returning a new slice.
func without(a []int, xs ...int) []int {
	out := make([]int, 0, len(a))
	for _, v := range a {
		skip := false
		for _, x := range xs {
			if v == x {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, v)
		}
	}
	return out
}

// vertexIdx resolves v or reports it missing.
func vertexIdx[V comparable](g *graph.Graph[V], op string, v V) (int, error) {
	idx := g.NodeIdx(v)
	if idx == index.NotFound {
		return idx, graph.VertexNotFoundError(op, v)
	}
	return idx, nil
}
