// Package generator builds synthetic graphs over an explicit vertex list.
//
// Every generator must be configured before use: Generate fails with
// ErrNotConfigured until Configure succeeds, and Configure fails with
// ErrBadConfigured on invalid parameters. Random generators draw from the
// *rand.Rand they are created with, so a fixed seed gives a fixed graph.
package generator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
)

var (
	ErrNotConfigured = errors.New("generator is not configured")
	ErrBadConfigured = errors.New("generator is badly configured")
)

// Generator produces a new graph on every call.
type Generator[V comparable] interface {
	Generate() (*graph.Graph[V], error)
}

// Variant selects the kind of graph a generator builds.
type Variant struct {
	Directed   bool
	Weighted   bool
	Multigraph bool
}

// Option configures a generator.
type Option func(*options)

type options struct {
	logger logging.Logger
}

// WithLogger sets the logger used to report generated graphs.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// base holds the state shared by every generator.
type base[V comparable] struct {
	name       string
	variant    Variant
	vertices   []V
	configured bool
	logger     logging.Logger
}

func newBase[V comparable](name string, variant Variant, opts []Option) base[V] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return base[V]{
		name:    name,
		variant: variant,
		logger:  logging.OrDefault(o.logger).With(logging.Component("generator")),
	}
}

// setVertices validates and stores the vertex list. Configuration is reset
// on failure.
func (b *base[V]) setVertices(vertices []V) error {
	b.configured = false
	seen := make(map[V]struct{}, len(vertices))
	for _, v := range vertices {
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%s: duplicate vertex %v: %w", b.name, v, ErrBadConfigured)
		}
		seen[v] = struct{}{}
	}
	b.vertices = slices.Clone(vertices)
	return nil
}

func (b *base[V]) bad(format string, args ...any) error {
	b.configured = false
	return fmt.Errorf("%s: %s: %w", b.name, fmt.Sprintf(format, args...), ErrBadConfigured)
}

// start returns a graph holding every configured vertex.
func (b *base[V]) start() (*graph.Graph[V], *logging.TimedOperation, error) {
	if !b.configured {
		return nil, nil, fmt.Errorf("%s: %w", b.name, ErrNotConfigured)
	}
	timer := logging.StartTimer(b.logger, "graph generated", logging.Operation(b.name))
	g := graph.NewOf[V](b.variant.Directed, b.variant.Weighted, b.variant.Multigraph,
		graph.WithSelfLoops(false), graph.WithCapacity(len(b.vertices)))
	for _, v := range b.vertices {
		g.AddNode(v)
	}
	return g, timer, nil
}

func finish[V comparable](g *graph.Graph[V], timer *logging.TimedOperation) (*graph.Graph[V], error) {
	timer.End(logging.Int("vertices", g.VertexCount()), logging.Int("edges", g.EdgeCount()))
	return g, nil
}

// EmptyGraph generates the vertices without any edge.
type EmptyGraph[V comparable] struct {
	base[V]
}

func NewEmptyGraph[V comparable](variant Variant, opts ...Option) *EmptyGraph[V] {
	return &EmptyGraph[V]{base: newBase[V]("EmptyGraph", variant, opts)}
}

// Configure sets the vertex list.
func (e *EmptyGraph[V]) Configure(vertices []V) error {
	if err := e.setVertices(vertices); err != nil {
		return err
	}
	e.configured = true
	return nil
}

func (e *EmptyGraph[V]) Generate() (*graph.Graph[V], error) {
	g, timer, err := e.start()
	if err != nil {
		return nil, err
	}
	return finish(g, timer)
}

// CompleteGraph links every pair of distinct vertices, in both directions
// when directed.
type CompleteGraph[V comparable] struct {
	base[V]
}

func NewCompleteGraph[V comparable](variant Variant, opts ...Option) *CompleteGraph[V] {
	return &CompleteGraph[V]{base: newBase[V]("CompleteGraph", variant, opts)}
}

// Configure sets the vertex list.
func (c *CompleteGraph[V]) Configure(vertices []V) error {
	if err := c.setVertices(vertices); err != nil {
		return err
	}
	c.configured = true
	return nil
}

func (c *CompleteGraph[V]) Generate() (*graph.Graph[V], error) {
	g, timer, err := c.start()
	if err != nil {
		return nil, err
	}
	for i, u := range c.vertices {
		for j, v := range c.vertices {
			if i == j || (!c.variant.Directed && j < i) {
				continue
			}
			g.AddEdge(u, v)
		}
	}
	return finish(g, timer)
}

var (
	_ Generator[int] = (*EmptyGraph[int])(nil)
	_ Generator[int] = (*CompleteGraph[int])(nil)
	_ Generator[int] = (*ErdosRenyi[int])(nil)
	_ Generator[int] = (*BarabasiAlbert[int])(nil)
)
