package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/relation"
)

// Undirected containers store every edge in both directions of a single
// relation, so the adjacency row of a vertex is its whole neighbourhood.
// The helpers below are shared by the simple and multigraph variants.

func undirectedNeighbours(seq iter.Seq[relation.Entry[Attr]], o Orientation) iter.Seq[Neighbour] {
	if !o.Valid() {
		return emptyNeighbours
	}
	return toNeighbours(seq)
}

func undirectedFirstOfMulti(seq iter.Seq[relation.Entry[[]Attr]], o Orientation) iter.Seq[Neighbour] {
	if !o.Valid() {
		return emptyNeighbours
	}
	return firstOfMulti(seq)
}

// UndirectedEdges stores a simple undirected graph.
type UndirectedEdges struct {
	edgeQueries
	rel      *relation.Relation[Attr]
	weighted bool
	numEdges int
}

// NewUndirectedEdges creates an empty undirected edge container.
func NewUndirectedEdges(weighted bool) *UndirectedEdges {
	e := &UndirectedEdges{
		rel:      relation.New[Attr](),
		weighted: weighted,
	}
	e.edgeQueries = edgeQueries{src: e}
	return e
}

func (e *UndirectedEdges) AddNode(idx int) bool { return e.rel.AddItem(idx) }

// AddEdge links orig and dest. It fails if they are already linked.
func (e *UndirectedEdges) AddEdge(orig, dest int, weight float64, typ int) bool {
	if !e.weighted {
		weight = DefaultWeight
	}
	a := Attr{Weight: weight, Type: typ}
	if !e.rel.AddPair(orig, dest, a) {
		return false
	}
	if orig != dest {
		e.rel.AddPair(dest, orig, a)
	}
	e.numEdges++
	return true
}

func (e *UndirectedEdges) UpdateEdgeWeight(orig, dest int, weight float64) bool {
	if !e.weighted {
		return false
	}
	a, ok := e.rel.Value(orig, dest)
	if !ok {
		return false
	}
	a.Weight = weight
	return e.update(orig, dest, a)
}

func (e *UndirectedEdges) UpdateEdgeType(orig, dest int, typ int) bool {
	a, ok := e.rel.Value(orig, dest)
	if !ok {
		return false
	}
	a.Type = typ
	return e.update(orig, dest, a)
}

func (e *UndirectedEdges) update(orig, dest int, a Attr) bool {
	if !e.rel.UpdatePair(orig, dest, a) {
		return false
	}
	if orig != dest {
		e.rel.UpdatePair(dest, orig, a)
	}
	return true
}

func (e *UndirectedEdges) RemoveEdge(orig, dest int) bool {
	if !e.rel.RemovePair(orig, dest) {
		return false
	}
	if orig != dest {
		e.rel.RemovePair(dest, orig)
	}
	e.numEdges--
	return true
}

func (e *UndirectedEdges) ContainsEdge(orig, dest int) bool { return e.rel.ContainsPair(orig, dest) }

func (e *UndirectedEdges) EdgeWeight(orig, dest int) (float64, bool) {
	a, ok := e.rel.Value(orig, dest)
	return a.Weight, ok
}

func (e *UndirectedEdges) EdgeType(orig, dest int) (int, bool) {
	a, ok := e.rel.Value(orig, dest)
	return a.Type, ok
}

// Neighbours ignores the orientation: every orientation collapses to the
// single neighbour relation.
func (e *UndirectedEdges) Neighbours(idx int, o Orientation) iter.Seq[Neighbour] {
	return undirectedNeighbours(e.rel.IdsSecond(idx), o)
}

func (e *UndirectedEdges) Degree(idx int, o Orientation) int {
	if !o.Valid() {
		return 0
	}
	return e.rel.NumSecond(idx)
}

func (e *UndirectedEdges) NumEdges() int    { return e.numEdges }
func (e *UndirectedEdges) Directed() bool   { return false }
func (e *UndirectedEdges) Weighted() bool   { return e.weighted }
func (e *UndirectedEdges) Multigraph() bool { return false }

// UndirectedMultiEdges stores an undirected multigraph.
type UndirectedMultiEdges struct {
	edgeQueries
	rel      *relation.Multi[Attr]
	weighted bool
	numEdges int
}

// NewUndirectedMultiEdges creates an empty undirected multigraph container.
func NewUndirectedMultiEdges(weighted bool) *UndirectedMultiEdges {
	e := &UndirectedMultiEdges{
		rel:      relation.NewMulti[Attr](),
		weighted: weighted,
	}
	e.edgeQueries = edgeQueries{src: e}
	return e
}

func (e *UndirectedMultiEdges) AddNode(idx int) bool { return e.rel.AddItem(idx) }

// AddEdge appends a parallel edge between orig and dest.
func (e *UndirectedMultiEdges) AddEdge(orig, dest int, weight float64, typ int) bool {
	if !e.weighted {
		weight = DefaultWeight
	}
	a := Attr{Weight: weight, Type: typ}
	if !e.rel.AddPair(orig, dest, a) {
		return false
	}
	if orig != dest {
		e.rel.AddPair(dest, orig, a)
	}
	e.numEdges++
	return true
}

func (e *UndirectedMultiEdges) UpdateEdgeWeight(orig, dest int, weight float64) bool {
	return e.UpdateEdgeWeightAt(orig, dest, 0, weight)
}

func (e *UndirectedMultiEdges) UpdateEdgeType(orig, dest int, typ int) bool {
	return e.UpdateEdgeTypeAt(orig, dest, 0, typ)
}

func (e *UndirectedMultiEdges) UpdateEdgeWeightAt(orig, dest, pos int, weight float64) bool {
	if !e.weighted {
		return false
	}
	return e.updateAt(orig, dest, pos, func(a *Attr) { a.Weight = weight })
}

func (e *UndirectedMultiEdges) UpdateEdgeTypeAt(orig, dest, pos int, typ int) bool {
	return e.updateAt(orig, dest, pos, func(a *Attr) { a.Type = typ })
}

func (e *UndirectedMultiEdges) updateAt(orig, dest, pos int, change func(*Attr)) bool {
	if !updateMultiAt(e.rel, orig, dest, pos, change) {
		return false
	}
	if orig != dest {
		updateMultiAt(e.rel, dest, orig, pos, change)
	}
	return true
}

// RemoveEdge removes every parallel edge between orig and dest.
func (e *UndirectedMultiEdges) RemoveEdge(orig, dest int) bool {
	n := e.rel.Multiplicity(orig, dest)
	if !e.rel.RemovePair(orig, dest) {
		return false
	}
	if orig != dest {
		e.rel.RemovePair(dest, orig)
	}
	e.numEdges -= n
	return true
}

func (e *UndirectedMultiEdges) ContainsEdge(orig, dest int) bool {
	return e.rel.ContainsPair(orig, dest)
}

func (e *UndirectedMultiEdges) EdgeWeight(orig, dest int) (float64, bool) {
	a, ok := e.rel.First(orig, dest)
	return a.Weight, ok
}

func (e *UndirectedMultiEdges) EdgeType(orig, dest int) (int, bool) {
	a, ok := e.rel.First(orig, dest)
	return a.Type, ok
}

func (e *UndirectedMultiEdges) NumEdgesBetween(orig, dest int) int {
	return e.rel.Multiplicity(orig, dest)
}

func (e *UndirectedMultiEdges) EdgeWeights(orig, dest int) []float64 {
	return splitAttrs(dest, e.rel.Values(orig, dest)).Weights
}

func (e *UndirectedMultiEdges) EdgeTypes(orig, dest int) []int {
	return splitAttrs(dest, e.rel.Values(orig, dest)).Types
}

func (e *UndirectedMultiEdges) Neighbours(idx int, o Orientation) iter.Seq[Neighbour] {
	return undirectedFirstOfMulti(e.rel.IdsSecond(idx), o)
}

// MultiNeighbours yields the parallel edge lists of idx for any orientation.
func (e *UndirectedMultiEdges) MultiNeighbours(idx int, o Orientation) (iter.Seq[MultiNeighbour], error) {
	if !o.Valid() {
		return nil, NewError("MultiNeighbours").Context(o.String()).Cause(ErrInvalidOrientation).Err()
	}
	return toMultiNeighbours(e.rel.IdsSecond(idx)), nil
}

func (e *UndirectedMultiEdges) Degree(idx int, o Orientation) int {
	if !o.Valid() {
		return 0
	}
	return e.rel.NumSecond(idx)
}

// NumEdges counts every parallel edge once.
func (e *UndirectedMultiEdges) NumEdges() int    { return e.numEdges }
func (e *UndirectedMultiEdges) Directed() bool   { return false }
func (e *UndirectedMultiEdges) Weighted() bool   { return e.weighted }
func (e *UndirectedMultiEdges) Multigraph() bool { return true }

var (
	_ MultiEdges = (*DirectedMultiEdges)(nil)
	_ MultiEdges = (*UndirectedMultiEdges)(nil)
	_ Edges      = (*DirectedEdges)(nil)
	_ Edges      = (*UndirectedEdges)(nil)
)
