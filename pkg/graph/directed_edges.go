package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/relation"
)

// DirectedEdges stores a simple directed graph in one relation. The
// relation's adjacency view gives successors and its incidence view gives
// predecessors.
type DirectedEdges struct {
	edgeQueries
	rel      *relation.Relation[Attr]
	weighted bool
}

// NewDirectedEdges creates an empty directed edge container.
func NewDirectedEdges(weighted bool) *DirectedEdges {
	e := &DirectedEdges{
		rel:      relation.New[Attr](),
		weighted: weighted,
	}
	e.edgeQueries = edgeQueries{src: e}
	return e
}

func (e *DirectedEdges) AddNode(idx int) bool { return e.rel.AddItem(idx) }

// AddEdge inserts orig->dest. It fails if the edge already exists.
func (e *DirectedEdges) AddEdge(orig, dest int, weight float64, typ int) bool {
	if !e.weighted {
		weight = DefaultWeight
	}
	return e.rel.AddPair(orig, dest, Attr{Weight: weight, Type: typ})
}

// UpdateEdgeWeight changes the weight of an existing edge. Unweighted
// containers reject every update.
func (e *DirectedEdges) UpdateEdgeWeight(orig, dest int, weight float64) bool {
	if !e.weighted {
		return false
	}
	a, ok := e.rel.Value(orig, dest)
	if !ok {
		return false
	}
	a.Weight = weight
	return e.rel.UpdatePair(orig, dest, a)
}

func (e *DirectedEdges) UpdateEdgeType(orig, dest int, typ int) bool {
	a, ok := e.rel.Value(orig, dest)
	if !ok {
		return false
	}
	a.Type = typ
	return e.rel.UpdatePair(orig, dest, a)
}

func (e *DirectedEdges) RemoveEdge(orig, dest int) bool { return e.rel.RemovePair(orig, dest) }

func (e *DirectedEdges) ContainsEdge(orig, dest int) bool { return e.rel.ContainsPair(orig, dest) }

func (e *DirectedEdges) EdgeWeight(orig, dest int) (float64, bool) {
	a, ok := e.rel.Value(orig, dest)
	return a.Weight, ok
}

func (e *DirectedEdges) EdgeType(orig, dest int) (int, bool) {
	a, ok := e.rel.Value(orig, dest)
	return a.Type, ok
}

// Neighbours yields predecessors (In), successors (Out), their union (Und)
// or reciprocal neighbours (Mutual). For Und and Mutual the attributes of
// the outgoing edge are reported when both directions exist.
func (e *DirectedEdges) Neighbours(idx int, o Orientation) iter.Seq[Neighbour] {
	switch o {
	case In:
		return toNeighbours(e.rel.IdsFirst(idx))
	case Out:
		return toNeighbours(e.rel.IdsSecond(idx))
	case Und:
		return mergeNeighbours(toNeighbours(e.rel.IdsFirst(idx)), toNeighbours(e.rel.IdsSecond(idx)), true)
	case Mutual:
		return mergeNeighbours(toNeighbours(e.rel.IdsFirst(idx)), toNeighbours(e.rel.IdsSecond(idx)), false)
	default:
		return emptyNeighbours
	}
}

func (e *DirectedEdges) Degree(idx int, o Orientation) int {
	switch o {
	case In:
		return e.rel.NumFirst(idx)
	case Out:
		return e.rel.NumSecond(idx)
	default:
		return countSeq(e.Neighbours(idx, o))
	}
}

func (e *DirectedEdges) NumEdges() int    { return e.rel.NumPairs() }
func (e *DirectedEdges) Directed() bool   { return true }
func (e *DirectedEdges) Weighted() bool   { return e.weighted }
func (e *DirectedEdges) Multigraph() bool { return false }

// DirectedMultiEdges stores a directed multigraph. Parallel edges between
// the same ordered pair keep their own weight and type.
type DirectedMultiEdges struct {
	edgeQueries
	rel      *relation.Multi[Attr]
	weighted bool
}

// NewDirectedMultiEdges creates an empty directed multigraph container.
func NewDirectedMultiEdges(weighted bool) *DirectedMultiEdges {
	e := &DirectedMultiEdges{
		rel:      relation.NewMulti[Attr](),
		weighted: weighted,
	}
	e.edgeQueries = edgeQueries{src: e}
	return e
}

func (e *DirectedMultiEdges) AddNode(idx int) bool { return e.rel.AddItem(idx) }

// AddEdge appends a parallel edge orig->dest. It only fails when an
// endpoint is unknown.
func (e *DirectedMultiEdges) AddEdge(orig, dest int, weight float64, typ int) bool {
	if !e.weighted {
		weight = DefaultWeight
	}
	return e.rel.AddPair(orig, dest, Attr{Weight: weight, Type: typ})
}

// UpdateEdgeWeight changes the weight of the first parallel edge.
func (e *DirectedMultiEdges) UpdateEdgeWeight(orig, dest int, weight float64) bool {
	return e.UpdateEdgeWeightAt(orig, dest, 0, weight)
}

// UpdateEdgeType changes the type of the first parallel edge.
func (e *DirectedMultiEdges) UpdateEdgeType(orig, dest int, typ int) bool {
	return e.UpdateEdgeTypeAt(orig, dest, 0, typ)
}

func (e *DirectedMultiEdges) UpdateEdgeWeightAt(orig, dest, pos int, weight float64) bool {
	if !e.weighted {
		return false
	}
	return updateMultiAt(e.rel, orig, dest, pos, func(a *Attr) { a.Weight = weight })
}

func (e *DirectedMultiEdges) UpdateEdgeTypeAt(orig, dest, pos int, typ int) bool {
	return updateMultiAt(e.rel, orig, dest, pos, func(a *Attr) { a.Type = typ })
}

// RemoveEdge removes every parallel edge orig->dest.
func (e *DirectedMultiEdges) RemoveEdge(orig, dest int) bool { return e.rel.RemovePair(orig, dest) }

func (e *DirectedMultiEdges) ContainsEdge(orig, dest int) bool { return e.rel.ContainsPair(orig, dest) }

func (e *DirectedMultiEdges) EdgeWeight(orig, dest int) (float64, bool) {
	a, ok := e.rel.First(orig, dest)
	return a.Weight, ok
}

func (e *DirectedMultiEdges) EdgeType(orig, dest int) (int, bool) {
	a, ok := e.rel.First(orig, dest)
	return a.Type, ok
}

func (e *DirectedMultiEdges) NumEdgesBetween(orig, dest int) int {
	return e.rel.Multiplicity(orig, dest)
}

func (e *DirectedMultiEdges) EdgeWeights(orig, dest int) []float64 {
	return splitAttrs(dest, e.rel.Values(orig, dest)).Weights
}

func (e *DirectedMultiEdges) EdgeTypes(orig, dest int) []int {
	return splitAttrs(dest, e.rel.Values(orig, dest)).Types
}

func (e *DirectedMultiEdges) Neighbours(idx int, o Orientation) iter.Seq[Neighbour] {
	switch o {
	case In:
		return firstOfMulti(e.rel.IdsFirst(idx))
	case Out:
		return firstOfMulti(e.rel.IdsSecond(idx))
	case Und:
		return mergeNeighbours(firstOfMulti(e.rel.IdsFirst(idx)), firstOfMulti(e.rel.IdsSecond(idx)), true)
	case Mutual:
		return mergeNeighbours(firstOfMulti(e.rel.IdsFirst(idx)), firstOfMulti(e.rel.IdsSecond(idx)), false)
	default:
		return emptyNeighbours
	}
}

// MultiNeighbours yields the parallel edge lists of idx. Mutual reports the
// lists of the outgoing edges. Und is unsupported: the incoming and
// outgoing lists of a reciprocal pair describe different edges.
func (e *DirectedMultiEdges) MultiNeighbours(idx int, o Orientation) (iter.Seq[MultiNeighbour], error) {
	switch o {
	case In:
		return toMultiNeighbours(e.rel.IdsFirst(idx)), nil
	case Out:
		return toMultiNeighbours(e.rel.IdsSecond(idx)), nil
	case Mutual:
		return func(yield func(MultiNeighbour) bool) {
			for n := range toMultiNeighbours(e.rel.IdsSecond(idx)) {
				if e.rel.ContainsPair(n.Idx, idx) && !yield(n) {
					return
				}
			}
		}, nil
	default:
		return nil, NewError("MultiNeighbours").Context("directed multigraph, orientation " + o.String()).Cause(ErrUnsupportedOperation).Err()
	}
}

func (e *DirectedMultiEdges) Degree(idx int, o Orientation) int {
	switch o {
	case In:
		return e.rel.NumFirst(idx)
	case Out:
		return e.rel.NumSecond(idx)
	default:
		return countSeq(e.Neighbours(idx, o))
	}
}

// NumEdges counts every parallel edge.
func (e *DirectedMultiEdges) NumEdges() int    { return e.rel.NumValues() }
func (e *DirectedMultiEdges) Directed() bool   { return true }
func (e *DirectedMultiEdges) Weighted() bool   { return e.weighted }
func (e *DirectedMultiEdges) Multigraph() bool { return true }

func updateMultiAt(rel *relation.Multi[Attr], orig, dest, pos int, change func(*Attr)) bool {
	vals := rel.Values(orig, dest)
	if pos < 0 || pos >= len(vals) {
		return false
	}
	a := vals[pos]
	change(&a)
	return rel.UpdateValue(orig, dest, pos, a)
}

var emptyNeighbours iter.Seq[Neighbour] = func(func(Neighbour) bool) {}
