package algorithms

import (
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// Community represents a detected community
type Community[V comparable] struct {
	ID      int
	Nodes   []V
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult[V comparable] struct {
	Communities   []*Community[V]
	Modularity    float64   // Quality measure of the partitioning
	NodeCommunity map[V]int // Vertex -> Community ID
}

// Community returns the community ID of v.
func (r *CommunityDetectionResult[V]) Community(v V) (int, bool) {
	id, ok := r.NodeCommunity[v]
	return id, ok
}

// Sizes returns the size of every community, by ID.
func (r *CommunityDetectionResult[V]) Sizes() []int {
	out := make([]int, len(r.Communities))
	for i, c := range r.Communities {
		out[i] = c.Size
	}
	return out
}

// buildResult turns per-index labels into a result. Communities are
// numbered in order of their smallest member index and list members in
// index order.
func buildResult[V comparable](g *graph.Graph[V], labels []int) *CommunityDetectionResult[V] {
	ids := make(map[int]int)
	dense := make([]int, len(labels))
	result := &CommunityDetectionResult[V]{NodeCommunity: make(map[V]int, len(labels))}
	for idx, label := range labels {
		id, ok := ids[label]
		if !ok {
			id = len(result.Communities)
			ids[label] = id
			result.Communities = append(result.Communities, &Community[V]{ID: id})
		}
		dense[idx] = id
		v, _ := g.NodeAt(idx)
		c := result.Communities[id]
		c.Nodes = append(c.Nodes, v)
		c.Size++
		result.NodeCommunity[v] = id
	}

	internal := make([]int, len(result.Communities))
	for o := range g.VertexCount() {
		for _, d := range arcs(g, o) {
			if dense[o] == dense[d] {
				internal[dense[o]]++
			}
		}
	}
	for _, c := range result.Communities {
		if c.Size < 2 {
			continue
		}
		pairs := c.Size * (c.Size - 1)
		if !g.IsDirected() {
			pairs /= 2
		}
		c.Density = float64(internal[c.ID]) / float64(pairs)
	}
	result.Modularity = modularityIdx(g, dense)
	return result
}

// arcs lists the links leaving idx, counting each undirected link from its
// lower endpoint only and skipping self-loops.
func arcs[V comparable](g *graph.Graph[V], idx int) []int {
	var out []int
	for n := range g.NeighbourhoodIdx(idx, graph.Out) {
		if n == idx || (!g.IsDirected() && n < idx) {
			continue
		}
		out = append(out, n)
	}
	return out
}
