// Package graph provides fast in-memory directed and undirected graphs and
// multigraphs over arbitrary comparable vertex identifiers.
//
// A Graph composes an index.Index, which maps vertex identifiers to dense
// integer indices, with one of the Edges containers, which store the edges
// between those indices. Neighbourhood and degree queries are parameterised
// by an Orientation: In (predecessors), Out (successors), Und (union) or
// Mutual (reciprocal links only). On undirected graphs all four
// orientations select the same neighbourhood.
//
// Graphs are built on one goroutine and then read. They are not safe for
// concurrent mutation.
package graph

import (
	"iter"

	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// Edge is one edge of a graph with its attributes.
type Edge[V comparable] struct {
	From   V
	To     V
	Weight float64
	Type   int
}

type options struct {
	selfLoops bool
	capacity  int
}

// Option configures graph construction.
type Option func(*options)

// WithSelfLoops sets whether edges from a vertex to itself are accepted.
// Self-loops are accepted by default.
func WithSelfLoops(allowed bool) Option {
	return func(o *options) { o.selfLoops = allowed }
}

// WithCapacity preallocates room for n vertices.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// Graph is a vertex index combined with an edge container.
type Graph[V comparable] struct {
	vertices  *index.Index[V]
	edges     Edges
	multi     MultiEdges // nil unless the graph is a multigraph
	selfLoops bool
}

// New builds a graph over an existing edge container.
func New[V comparable](edges Edges, opts ...Option) *Graph[V] {
	o := options{selfLoops: true}
	for _, opt := range opts {
		opt(&o)
	}
	g := &Graph[V]{
		vertices:  index.NewWithCapacity[V](o.capacity),
		edges:     edges,
		selfLoops: o.selfLoops,
	}
	if m, ok := edges.(MultiEdges); ok && edges.Multigraph() {
		g.multi = m
	}
	return g
}

// NewDirected creates an empty simple directed graph.
func NewDirected[V comparable](weighted bool, opts ...Option) *Graph[V] {
	return New[V](NewDirectedEdges(weighted), opts...)
}

// NewUndirected creates an empty simple undirected graph.
func NewUndirected[V comparable](weighted bool, opts ...Option) *Graph[V] {
	return New[V](NewUndirectedEdges(weighted), opts...)
}

// NewDirectedMultigraph creates an empty directed multigraph.
func NewDirectedMultigraph[V comparable](weighted bool, opts ...Option) *Graph[V] {
	return New[V](NewDirectedMultiEdges(weighted), opts...)
}

// NewUndirectedMultigraph creates an empty undirected multigraph.
func NewUndirectedMultigraph[V comparable](weighted bool, opts ...Option) *Graph[V] {
	return New[V](NewUndirectedMultiEdges(weighted), opts...)
}

// NewLike creates an empty graph with the same capabilities as g.
func NewLike[V comparable, W comparable](g *Graph[W], opts ...Option) *Graph[V] {
	opts = append([]Option{WithSelfLoops(g.selfLoops)}, opts...)
	return NewOf[V](g.IsDirected(), g.IsWeighted(), g.IsMultigraph(), opts...)
}

// NewOf creates an empty graph with the given capabilities.
func NewOf[V comparable](directed, weighted, multigraph bool, opts ...Option) *Graph[V] {
	switch {
	case directed && multigraph:
		return NewDirectedMultigraph[V](weighted, opts...)
	case directed:
		return NewDirected[V](weighted, opts...)
	case multigraph:
		return NewUndirectedMultigraph[V](weighted, opts...)
	default:
		return NewUndirected[V](weighted, opts...)
	}
}

// IsDirected reports whether edges have a direction.
func (g *Graph[V]) IsDirected() bool { return g.edges.Directed() }

// IsWeighted reports whether edges carry their own weight.
func (g *Graph[V]) IsWeighted() bool { return g.edges.Weighted() }

// IsMultigraph reports whether parallel edges are allowed.
func (g *Graph[V]) IsMultigraph() bool { return g.edges.Multigraph() }

// AllowsSelfLoops reports the self-loop policy chosen at construction.
func (g *Graph[V]) AllowsSelfLoops() bool { return g.selfLoops }

// Index exposes the vertex index.
func (g *Graph[V]) Index() *index.Index[V] { return g.vertices }

// EdgeStore exposes the index-level edge container.
func (g *Graph[V]) EdgeStore() Edges { return g.edges }

// AddNode adds v to the graph. It returns false if v is already present.
func (g *Graph[V]) AddNode(v V) bool {
	if g.vertices.Contains(v) {
		return false
	}
	g.edges.AddNode(g.vertices.Add(v))
	return true
}

func (g *Graph[V]) ensureNode(v V) int {
	if idx := g.vertices.Object2Idx(v); idx != index.NotFound {
		return idx
	}
	idx := g.vertices.Add(v)
	g.edges.AddNode(idx)
	return idx
}

// AddEdge adds an edge with the default weight and type.
func (g *Graph[V]) AddEdge(orig, dest V) bool {
	return g.AddTypedEdge(orig, dest, DefaultWeight, DefaultType)
}

// AddWeightedEdge adds an edge with the default type.
func (g *Graph[V]) AddWeightedEdge(orig, dest V, weight float64) bool {
	return g.AddTypedEdge(orig, dest, weight, DefaultType)
}

// AddTypedEdge adds an edge, adding missing endpoints first. On simple
// graphs it returns false if the edge already exists; on multigraphs the
// edge is appended as a new parallel edge. Self-loops are rejected when the
// graph was built WithSelfLoops(false).
func (g *Graph[V]) AddTypedEdge(orig, dest V, weight float64, typ int) bool {
	if orig == dest && !g.selfLoops {
		return false
	}
	o := g.ensureNode(orig)
	d := g.ensureNode(dest)
	return g.edges.AddEdge(o, d, weight, typ)
}

// UpdateEdgeWeight changes the weight of an existing edge. On multigraphs
// it changes the first parallel edge.
func (g *Graph[V]) UpdateEdgeWeight(orig, dest V, weight float64) bool {
	o, d, ok := g.pair(orig, dest)
	return ok && g.edges.UpdateEdgeWeight(o, d, weight)
}

// UpdateEdgeType changes the type of an existing edge. On multigraphs it
// changes the first parallel edge.
func (g *Graph[V]) UpdateEdgeType(orig, dest V, typ int) bool {
	o, d, ok := g.pair(orig, dest)
	return ok && g.edges.UpdateEdgeType(o, d, typ)
}

// RemoveEdge removes the edge (all parallel edges on multigraphs).
// Vertices are never removed.
func (g *Graph[V]) RemoveEdge(orig, dest V) bool {
	o, d, ok := g.pair(orig, dest)
	return ok && g.edges.RemoveEdge(o, d)
}

// ContainsVertex reports whether v is in the graph.
func (g *Graph[V]) ContainsVertex(v V) bool { return g.vertices.Contains(v) }

// ContainsEdge reports whether there is an edge orig->dest (or between
// them, for undirected graphs).
func (g *Graph[V]) ContainsEdge(orig, dest V) bool {
	o, d, ok := g.pair(orig, dest)
	return ok && g.edges.ContainsEdge(o, d)
}

// VertexCount returns the number of vertices.
func (g *Graph[V]) VertexCount() int { return g.vertices.Size() }

// EdgeCount returns the number of edges, counting parallel edges.
func (g *Graph[V]) EdgeCount() int { return g.edges.NumEdges() }

// EdgeWeight returns the weight of orig->dest.
func (g *Graph[V]) EdgeWeight(orig, dest V) (float64, bool) {
	o, d, ok := g.pair(orig, dest)
	if !ok {
		return 0, false
	}
	return g.edges.EdgeWeight(o, d)
}

// EdgeType returns the type of orig->dest.
func (g *Graph[V]) EdgeType(orig, dest V) (int, bool) {
	o, d, ok := g.pair(orig, dest)
	if !ok {
		return 0, false
	}
	return g.edges.EdgeType(o, d)
}

// Nodes yields every vertex in index (insertion) order.
func (g *Graph[V]) Nodes() iter.Seq[V] { return g.vertices.Objects() }

// NodeIdx returns the dense index of v, or index.NotFound.
func (g *Graph[V]) NodeIdx(v V) int { return g.vertices.Object2Idx(v) }

// NodeAt returns the vertex stored at idx.
func (g *Graph[V]) NodeAt(idx int) (V, bool) { return g.vertices.Idx2Object(idx) }

// Edges yields every edge once. Undirected edges are reported from the
// endpoint with the lower index; parallel edges are reported one by one.
func (g *Graph[V]) Edges() iter.Seq[Edge[V]] {
	return func(yield func(Edge[V]) bool) {
		for oIdx, orig := range g.vertices.Indices() {
			if g.multi != nil {
				seq, err := g.multi.MultiNeighbours(oIdx, Out)
				if err != nil {
					return
				}
				for n := range seq {
					if !g.IsDirected() && n.Idx < oIdx {
						continue
					}
					dest, _ := g.vertices.Idx2Object(n.Idx)
					for i := range n.Weights {
						if !yield(Edge[V]{From: orig, To: dest, Weight: n.Weights[i], Type: n.Types[i]}) {
							return
						}
					}
				}
				continue
			}
			for n := range g.edges.Neighbours(oIdx, Out) {
				if !g.IsDirected() && n.Idx < oIdx {
					continue
				}
				dest, _ := g.vertices.Idx2Object(n.Idx)
				if !yield(Edge[V]{From: orig, To: dest, Weight: n.Weight, Type: n.Type}) {
					return
				}
			}
		}
	}
}

func (g *Graph[V]) pair(orig, dest V) (int, int, bool) {
	o := g.vertices.Object2Idx(orig)
	if o == index.NotFound {
		return 0, 0, false
	}
	d := g.vertices.Object2Idx(dest)
	if d == index.NotFound {
		return 0, 0, false
	}
	return o, d, true
}
