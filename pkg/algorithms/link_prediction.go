package algorithms

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// LinkPredictionMethod selects the scoring formula for link prediction.
type LinkPredictionMethod int

const (
	// LinkPredCommonNeighbours scores by |N(u) ∩ N(v)|.
	LinkPredCommonNeighbours LinkPredictionMethod = iota

	// LinkPredJaccard scores by |N(u) ∩ N(v)| / |N(u) ∪ N(v)|.
	LinkPredJaccard

	// LinkPredAdamicAdar scores by Σ_{w ∈ N(u)∩N(v)} 1/log(|N(w)|). Common
	// neighbours with a single neighbour are skipped.
	LinkPredAdamicAdar

	// LinkPredResourceAllocation scores by Σ_{w ∈ N(u)∩N(v)} 1/|N(w)|.
	LinkPredResourceAllocation

	// LinkPredPreferentialAttachment scores by |N(u)| × |N(v)|.
	LinkPredPreferentialAttachment

	// LinkPredCosine scores by |N(u) ∩ N(v)| / sqrt(|N(u)| × |N(v)|).
	LinkPredCosine
)

var methodNames = map[LinkPredictionMethod]string{
	LinkPredCommonNeighbours:       "common-neighbours",
	LinkPredJaccard:                "jaccard",
	LinkPredAdamicAdar:             "adamic-adar",
	LinkPredResourceAllocation:     "resource-allocation",
	LinkPredPreferentialAttachment: "preferential-attachment",
	LinkPredCosine:                 "cosine",
}

func (m LinkPredictionMethod) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseLinkPredictionMethod maps a method name back to its value.
func ParseLinkPredictionMethod(s string) (LinkPredictionMethod, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range methodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown link prediction method %q", s)
}

// LinkPredictionMethods lists every method in declaration order.
func LinkPredictionMethods() []LinkPredictionMethod {
	return []LinkPredictionMethod{
		LinkPredCommonNeighbours, LinkPredJaccard, LinkPredAdamicAdar,
		LinkPredResourceAllocation, LinkPredPreferentialAttachment, LinkPredCosine,
	}
}

// LinkPredictionOptions configures link prediction.
//
// UOrientation and VOrientation pick the neighbourhoods of the two endpoints;
// WOrientation picks the neighbourhood used to weigh common neighbours in
// Adamic-Adar and Resource Allocation. Scores across methods are not
// comparable.
type LinkPredictionOptions struct {
	Method          LinkPredictionMethod
	UOrientation    graph.Orientation
	VOrientation    graph.Orientation
	WOrientation    graph.Orientation
	ExcludeExisting bool // skip pairs already linked u->v
	TopK            int  // 0 = all
}

// LinkPrediction holds a predicted link score between two vertices.
type LinkPrediction[V comparable] struct {
	From  V
	To    V
	Score float64
}

// LinkPredictionResult holds predictions for a single source vertex.
type LinkPredictionResult[V comparable] struct {
	Source      V
	Predictions []LinkPrediction[V] // sorted desc by Score
}

// DefaultLinkPredictionOptions returns sensible defaults.
func DefaultLinkPredictionOptions() LinkPredictionOptions {
	return LinkPredictionOptions{
		Method:          LinkPredCommonNeighbours,
		UOrientation:    graph.Out,
		VOrientation:    graph.In,
		WOrientation:    graph.Und,
		ExcludeExisting: true,
		TopK:            10,
	}
}

// PredictLinkScore computes the score of the link u->v. Missing vertices have
// empty neighbourhoods and score zero.
func PredictLinkScore[V comparable](g *graph.Graph[V], u, v V, opts LinkPredictionOptions) (float64, error) {
	if _, ok := methodNames[opts.Method]; !ok {
		return 0, fmt.Errorf("unknown link prediction method %d", int(opts.Method))
	}
	ui, vi := g.NodeIdx(u), g.NodeIdx(v)
	if ui < 0 || vi < 0 {
		return 0, nil
	}
	setU := neighbourSet(g, ui, opts.UOrientation)
	setV := neighbourSet(g, vi, opts.VOrientation)
	return computeLinkScore(g, setU, setV, opts), nil
}

// PredictLinksFor scores source against every other vertex. Results are
// sorted descending by score with ties broken by vertex index; zero-score
// pairs are excluded.
func PredictLinksFor[V comparable](g *graph.Graph[V], source V, opts LinkPredictionOptions) (*LinkPredictionResult[V], error) {
	if _, ok := methodNames[opts.Method]; !ok {
		return nil, fmt.Errorf("unknown link prediction method %d", int(opts.Method))
	}
	si, err := vertexIdx(g, "PredictLinksFor", source)
	if err != nil {
		return nil, err
	}

	type scored struct {
		idx   int
		score float64
	}
	setU := neighbourSet(g, si, opts.UOrientation)
	var candidates []scored
	for vi := range g.VertexCount() {
		if vi == si {
			continue
		}
		if opts.ExcludeExisting && g.EdgeStore().ContainsEdge(si, vi) {
			continue
		}
		score := computeLinkScore(g, setU, neighbourSet(g, vi, opts.VOrientation), opts)
		if score > 0 {
			candidates = append(candidates, scored{vi, score})
		}
	}

	slices.SortFunc(candidates, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
	if opts.TopK > 0 && len(candidates) > opts.TopK {
		candidates = candidates[:opts.TopK]
	}

	result := &LinkPredictionResult[V]{Source: source, Predictions: make([]LinkPrediction[V], len(candidates))}
	for i, c := range candidates {
		to, _ := g.NodeAt(c.idx)
		result.Predictions[i] = LinkPrediction[V]{From: source, To: to, Score: c.score}
	}
	return result, nil
}

// PredictLinks runs PredictLinksFor for every vertex and returns the results
// in vertex index order. It stops early with ctx.Err() on cancellation.
func PredictLinks[V comparable](ctx context.Context, g *graph.Graph[V], opts LinkPredictionOptions) ([]*LinkPredictionResult[V], error) {
	if _, ok := methodNames[opts.Method]; !ok {
		return nil, fmt.Errorf("unknown link prediction method %d", int(opts.Method))
	}
	results := make([]*LinkPredictionResult[V], 0, g.VertexCount())
	for source := range g.Nodes() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := PredictLinksFor(g, source, opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func computeLinkScore[V comparable](g *graph.Graph[V], setU, setV []int, opts LinkPredictionOptions) float64 {
	switch opts.Method {
	case LinkPredPreferentialAttachment:
		return float64(len(setU) * len(setV))
	case LinkPredJaccard:
		union := unionSize(setU, setV)
		if union == 0 {
			return 0
		}
		return float64(len(intersect(setU, setV))) / float64(union)
	case LinkPredCosine:
		if len(setU) == 0 || len(setV) == 0 {
			return 0
		}
		return float64(len(intersect(setU, setV))) / math.Sqrt(float64(len(setU)*len(setV)))
	case LinkPredAdamicAdar:
		score := 0.0
		for _, w := range intersect(setU, setV) {
			if deg := g.NeighbourhoodSizeIdx(w, opts.WOrientation); deg > 1 {
				score += 1.0 / math.Log(float64(deg))
			}
		}
		return score
	case LinkPredResourceAllocation:
		score := 0.0
		for _, w := range intersect(setU, setV) {
			if deg := g.NeighbourhoodSizeIdx(w, opts.WOrientation); deg > 0 {
				score += 1.0 / float64(deg)
			}
		}
		return score
	default:
		return float64(len(intersect(setU, setV)))
	}
}
