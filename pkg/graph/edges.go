package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/relation"
)

const (
	// DefaultWeight is the weight of every edge in an unweighted graph.
	DefaultWeight = 1.0
	// DefaultType is the type of edges added without an explicit type.
	DefaultType = 0
)

// Attr is the value stored per edge.
type Attr struct {
	Weight float64
	Type   int
}

// Neighbour is an adjacent vertex index together with the attributes of the
// edge that links it. On multigraphs the attributes are those of the first
// parallel edge.
type Neighbour struct {
	Idx    int
	Weight float64
	Type   int
}

// MultiNeighbour is an adjacent vertex index with the weights and types of
// every parallel edge linking it, in insertion order.
type MultiNeighbour struct {
	Idx     int
	Weights []float64
	Types   []int
}

// Edges is the index-level edge container behind a Graph. All indices must
// have been registered with AddNode.
type Edges interface {
	AddNode(idx int) bool
	AddEdge(orig, dest int, weight float64, typ int) bool
	UpdateEdgeWeight(orig, dest int, weight float64) bool
	UpdateEdgeType(orig, dest int, typ int) bool
	RemoveEdge(orig, dest int) bool

	ContainsEdge(orig, dest int) bool
	EdgeWeight(orig, dest int) (float64, bool)
	EdgeType(orig, dest int) (int, bool)

	// Neighbours yields the neighbours of idx in ascending index order.
	Neighbours(idx int, o Orientation) iter.Seq[Neighbour]
	// Degree counts the distinct neighbours of idx under o.
	Degree(idx int, o Orientation) int

	IncidentNodes(idx int) iter.Seq[int]
	AdjacentNodes(idx int) iter.Seq[int]
	NeighbourNodes(idx int) iter.Seq[int]
	MutualNodes(idx int) iter.Seq[int]
	IncidentWeights(idx int) iter.Seq[Neighbour]
	AdjacentWeights(idx int) iter.Seq[Neighbour]
	NeighbourWeights(idx int) iter.Seq[Neighbour]
	MutualWeights(idx int) iter.Seq[Neighbour]
	IncidentTypes(idx int) iter.Seq[Neighbour]
	AdjacentTypes(idx int) iter.Seq[Neighbour]
	NeighbourTypes(idx int) iter.Seq[Neighbour]
	MutualTypes(idx int) iter.Seq[Neighbour]
	IncidentCount(idx int) int
	AdjacentCount(idx int) int
	NeighbourCount(idx int) int
	MutualCount(idx int) int

	// NumEdges counts edges; parallel edges count once each.
	NumEdges() int
	Directed() bool
	Weighted() bool
	Multigraph() bool
}

// MultiEdges is implemented by the multigraph containers.
type MultiEdges interface {
	Edges
	NumEdgesBetween(orig, dest int) int
	EdgeWeights(orig, dest int) []float64
	EdgeTypes(orig, dest int) []int
	UpdateEdgeWeightAt(orig, dest, pos int, weight float64) bool
	UpdateEdgeTypeAt(orig, dest, pos int, typ int) bool
	// MultiNeighbours yields per-neighbour weight and type lists. It fails
	// with ErrUnsupportedOperation where merging parallel lists from both
	// directions has no meaning.
	MultiNeighbours(idx int, o Orientation) (iter.Seq[MultiNeighbour], error)
}

// neighbourSource is the part each container variant implements itself;
// edgeQueries derives the named per-orientation queries from it.
type neighbourSource interface {
	Neighbours(idx int, o Orientation) iter.Seq[Neighbour]
	Degree(idx int, o Orientation) int
}

type edgeQueries struct {
	src neighbourSource
}

func (q edgeQueries) IncidentNodes(idx int) iter.Seq[int]  { return nodesOf(q.src.Neighbours(idx, In)) }
func (q edgeQueries) AdjacentNodes(idx int) iter.Seq[int]  { return nodesOf(q.src.Neighbours(idx, Out)) }
func (q edgeQueries) NeighbourNodes(idx int) iter.Seq[int] { return nodesOf(q.src.Neighbours(idx, Und)) }
func (q edgeQueries) MutualNodes(idx int) iter.Seq[int]    { return nodesOf(q.src.Neighbours(idx, Mutual)) }

func (q edgeQueries) IncidentWeights(idx int) iter.Seq[Neighbour]  { return q.src.Neighbours(idx, In) }
func (q edgeQueries) AdjacentWeights(idx int) iter.Seq[Neighbour]  { return q.src.Neighbours(idx, Out) }
func (q edgeQueries) NeighbourWeights(idx int) iter.Seq[Neighbour] { return q.src.Neighbours(idx, Und) }
func (q edgeQueries) MutualWeights(idx int) iter.Seq[Neighbour]    { return q.src.Neighbours(idx, Mutual) }

func (q edgeQueries) IncidentTypes(idx int) iter.Seq[Neighbour]  { return q.src.Neighbours(idx, In) }
func (q edgeQueries) AdjacentTypes(idx int) iter.Seq[Neighbour]  { return q.src.Neighbours(idx, Out) }
func (q edgeQueries) NeighbourTypes(idx int) iter.Seq[Neighbour] { return q.src.Neighbours(idx, Und) }
func (q edgeQueries) MutualTypes(idx int) iter.Seq[Neighbour]    { return q.src.Neighbours(idx, Mutual) }

func (q edgeQueries) IncidentCount(idx int) int  { return q.src.Degree(idx, In) }
func (q edgeQueries) AdjacentCount(idx int) int  { return q.src.Degree(idx, Out) }
func (q edgeQueries) NeighbourCount(idx int) int { return q.src.Degree(idx, Und) }
func (q edgeQueries) MutualCount(idx int) int    { return q.src.Degree(idx, Mutual) }

func nodesOf(seq iter.Seq[Neighbour]) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := range seq {
			if !yield(n.Idx) {
				return
			}
		}
	}
}

func toNeighbours(seq iter.Seq[relation.Entry[Attr]]) iter.Seq[Neighbour] {
	return func(yield func(Neighbour) bool) {
		for e := range seq {
			if !yield(Neighbour{Idx: e.Idx, Weight: e.Value.Weight, Type: e.Value.Type}) {
				return
			}
		}
	}
}

func firstOfMulti(seq iter.Seq[relation.Entry[[]Attr]]) iter.Seq[Neighbour] {
	return func(yield func(Neighbour) bool) {
		for e := range seq {
			a := e.Value[0]
			if !yield(Neighbour{Idx: e.Idx, Weight: a.Weight, Type: a.Type}) {
				return
			}
		}
	}
}

func toMultiNeighbours(seq iter.Seq[relation.Entry[[]Attr]]) iter.Seq[MultiNeighbour] {
	return func(yield func(MultiNeighbour) bool) {
		for e := range seq {
			if !yield(splitAttrs(e.Idx, e.Value)) {
				return
			}
		}
	}
}

func splitAttrs(idx int, attrs []Attr) MultiNeighbour {
	mn := MultiNeighbour{
		Idx:     idx,
		Weights: make([]float64, len(attrs)),
		Types:   make([]int, len(attrs)),
	}
	for i, a := range attrs {
		mn.Weights[i] = a.Weight
		mn.Types[i] = a.Type
	}
	return mn
}

// mergeNeighbours walks two ascending neighbour streams together. With
// union set it yields every index present in either stream, preferring the
// value from out when both carry the index; otherwise it yields only the
// indices present in both, with the value from out.
func mergeNeighbours(in, out iter.Seq[Neighbour], union bool) iter.Seq[Neighbour] {
	return func(yield func(Neighbour) bool) {
		nextIn, stopIn := iter.Pull(in)
		defer stopIn()
		nextOut, stopOut := iter.Pull(out)
		defer stopOut()

		a, okA := nextIn()
		b, okB := nextOut()
		for okA || okB {
			switch {
			case okA && okB && a.Idx == b.Idx:
				if !yield(b) {
					return
				}
				a, okA = nextIn()
				b, okB = nextOut()
			case okA && (!okB || a.Idx < b.Idx):
				if union && !yield(a) {
					return
				}
				a, okA = nextIn()
			default:
				if union && !yield(b) {
					return
				}
				b, okB = nextOut()
			}
		}
	}
}

func countSeq[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
