package algorithms

import (
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// EdgeMetric scores an existing edge u->v. Scoring a missing edge fails
// with graph.ErrInexistentEdge; batch callers handle that per edge.
type EdgeMetric[V comparable] func(g *graph.Graph[V], u, v V) (float64, error)

// requireEdge resolves both endpoints of an existing edge.
func requireEdge[V comparable](g *graph.Graph[V], op string, u, v V) (int, int, error) {
	if !g.ContainsEdge(u, v) {
		return 0, 0, graph.InexistentEdgeError(op, u, v)
	}
	return g.NodeIdx(u), g.NodeIdx(v), nil
}

// Embeddedness is the neighbourhood overlap of an edge: the share of the
// endpoints' neighbours, excluding the endpoints themselves, that both of
// them link to.
func Embeddedness[V comparable](uSel, vSel graph.Orientation) EdgeMetric[V] {
	return func(g *graph.Graph[V], u, v V) (float64, error) {
		ui, vi, err := requireEdge(g, "Embeddedness", u, v)
		if err != nil {
			return 0, err
		}
		setU := without(neighbourSet(g, ui, uSel), vi)
		setV := without(neighbourSet(g, vi, vSel), ui)
		union := unionSize(setU, setV)
		if union == 0 {
			return 0, nil
		}
		return float64(len(intersect(setU, setV))) / float64(union), nil
	}
}

// FOAF counts the friends of friends of an edge: the neighbours shared by
// both endpoints.
func FOAF[V comparable](uSel, vSel graph.Orientation) EdgeMetric[V] {
	return func(g *graph.Graph[V], u, v V) (float64, error) {
		ui, vi, err := requireEdge(g, "FOAF", u, v)
		if err != nil {
			return 0, err
		}
		common := intersect(without(neighbourSet(g, ui, uSel), vi), without(neighbourSet(g, vi, vSel), ui))
		return float64(len(common)), nil
	}
}

// EdgeWeight returns the weight of u->v.
func EdgeWeight[V comparable]() EdgeMetric[V] {
	return func(g *graph.Graph[V], u, v V) (float64, error) {
		w, ok := g.EdgeWeight(u, v)
		if !ok {
			return 0, graph.InexistentEdgeError("EdgeWeight", u, v)
		}
		return w, nil
	}
}

// EdgeMetrics returns the named edge metrics with the given orientations.
func EdgeMetrics[V comparable](uSel, vSel graph.Orientation) map[string]EdgeMetric[V] {
	return map[string]EdgeMetric[V]{
		"embeddedness": Embeddedness[V](uSel, vSel),
		"foaf":         FOAF[V](uSel, vSel),
		"weight":       EdgeWeight[V](),
	}
}
