package algorithms

import (
	"container/list"
	"math/rand/v2"
	"slices"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// WeakComponents finds the connected components of the undirected view of g.
func WeakComponents[V comparable](g *graph.Graph[V]) *CommunityDetectionResult[V] {
	n := g.VertexCount()
	labels := make([]int, n)
	visited := make([]bool, n)

	// BFS to find each component
	for start := range n {
		if visited[start] {
			continue
		}
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true
		for queue.Len() > 0 {
			idx := queue.Remove(queue.Front()).(int)
			labels[idx] = start
			for nb := range g.NeighbourhoodIdx(idx, graph.Und) {
				if !visited[nb] {
					visited[nb] = true
					queue.PushBack(nb)
				}
			}
		}
	}
	return buildResult(g, labels)
}

// LabelPropagation detects communities by repeatedly moving every vertex to
// the label most frequent among its neighbours. Vertices are visited in a
// random order each round; ties keep the current label when it is among the
// best and otherwise break at random. It stops after maxIterations rounds or
// when no label changes.
func LabelPropagation[V comparable](g *graph.Graph[V], maxIterations int, rng *rand.Rand) *CommunityDetectionResult[V] {
	n := g.VertexCount()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	counts := make(map[int]int)
	var best []int
	for range maxIterations {
		changed := false
		for _, idx := range rng.Perm(n) {
			clear(counts)
			for nb := range g.NeighbourhoodIdx(idx, graph.Und) {
				if nb != idx {
					counts[labels[nb]]++
				}
			}
			if len(counts) == 0 {
				continue
			}

			maxCount := 0
			best = best[:0]
			for label, c := range counts {
				switch {
				case c > maxCount:
					maxCount = c
					best = append(best[:0], label)
				case c == maxCount:
					best = append(best, label)
				}
			}
			if slices.Contains(best, labels[idx]) {
				continue
			}
			slices.Sort(best)
			labels[idx] = best[rng.IntN(len(best))]
			changed = true
		}
		if !changed {
			break // Converged
		}
	}
	return buildResult(g, labels)
}

// Modularity scores a partition of g. Vertices missing from partition form
// singleton communities. Undirected graphs use Newman's modularity,
// directed graphs its directed generalisation; multiplicities, weights and
// self-loops are ignored.
func Modularity[V comparable](g *graph.Graph[V], partition map[V]int) float64 {
	labels := make([]int, g.VertexCount())
	next := 0
	for _, c := range partition {
		next = max(next, c+1)
	}
	for idx := range labels {
		v, _ := g.NodeAt(idx)
		c, ok := partition[v]
		if !ok {
			c = next
			next++
		}
		labels[idx] = c
	}
	return modularityIdx(g, labels)
}

func modularityIdx[V comparable](g *graph.Graph[V], labels []int) float64 {
	internal := make(map[int]float64)
	outDeg := make(map[int]float64)
	inDeg := make(map[int]float64)
	m := 0.0
	for o := range g.VertexCount() {
		for _, d := range arcs(g, o) {
			m++
			outDeg[labels[o]]++
			inDeg[labels[d]]++
			if labels[o] == labels[d] {
				internal[labels[o]]++
			}
		}
	}
	if m == 0 {
		return 0
	}

	q := 0.0
	seen := make(map[int]bool)
	for _, c := range labels {
		if seen[c] {
			continue
		}
		seen[c] = true
		if g.IsDirected() {
			q += internal[c]/m - outDeg[c]*inDeg[c]/(m*m)
		} else {
			deg := outDeg[c] + inDeg[c]
			q += internal[c]/m - (deg/(2*m))*(deg/(2*m))
		}
	}
	return q
}
