package algorithms

import (
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// ClusteringCoefficient returns the local clustering coefficient of v over
// the undirected view of g: the fraction of pairs of neighbours of v that
// are linked. Vertices with fewer than two neighbours score zero.
func ClusteringCoefficient[V comparable](g *graph.Graph[V], v V) float64 {
	idx := g.NodeIdx(v)
	if idx < 0 {
		return 0
	}
	return clusteringIdx(g, idx)
}

func clusteringIdx[V comparable](g *graph.Graph[V], idx int) float64 {
	neighbours := neighbourSet(g, idx, graph.Und)
	k := len(neighbours)
	if k < 2 {
		return 0
	}
	links := 0
	for i, a := range neighbours {
		for _, b := range neighbours[i+1:] {
			if g.EdgeStore().ContainsEdge(a, b) || g.EdgeStore().ContainsEdge(b, a) {
				links++
			}
		}
	}
	return float64(links) / float64(k*(k-1)/2)
}

// ClusteringCoefficients returns the local clustering coefficient of every
// vertex.
func ClusteringCoefficients[V comparable](g *graph.Graph[V]) map[V]float64 {
	out := make(map[V]float64, g.VertexCount())
	for idx := range g.VertexCount() {
		v, _ := g.NodeAt(idx)
		out[v] = clusteringIdx(g, idx)
	}
	return out
}

// AverageClusteringCoefficient averages the local coefficient over all
// vertices.
func AverageClusteringCoefficient[V comparable](g *graph.Graph[V]) float64 {
	n := g.VertexCount()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for idx := range n {
		sum += clusteringIdx(g, idx)
	}
	return sum / float64(n)
}

// DegreeDistribution counts vertices per degree under o.
func DegreeDistribution[V comparable](g *graph.Graph[V], o graph.Orientation) map[int]int {
	dist := make(map[int]int)
	for idx := range g.VertexCount() {
		dist[g.NeighbourhoodSizeIdx(idx, o)]++
	}
	return dist
}
