package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/dd0wney/cluso-socialnet/pkg/generator"
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
)

// Build runs the configured generator over the vertices 0..Vertices-1 with
// the variant given by gc.
func (gen *GenerateConfig) Build(gc GraphConfig, rng *rand.Rand, logger logging.Logger) (*graph.Graph[int], error) {
	variant := generator.Variant{Directed: gc.Directed, Weighted: gc.Weighted, Multigraph: gc.Multigraph}
	vertices := make([]int, gen.Vertices)
	for i := range vertices {
		vertices[i] = i
	}
	opt := generator.WithLogger(logger)

	switch gen.Kind {
	case GenerateEmpty:
		g := generator.NewEmptyGraph[int](variant, opt)
		if err := g.Configure(vertices); err != nil {
			return nil, err
		}
		return g.Generate()
	case GenerateComplete:
		g := generator.NewCompleteGraph[int](variant, opt)
		if err := g.Configure(vertices); err != nil {
			return nil, err
		}
		return g.Generate()
	case GenerateErdosRenyi:
		g := generator.NewErdosRenyi[int](variant, rng, opt)
		if err := g.Configure(vertices, gen.Probability); err != nil {
			return nil, err
		}
		return g.Generate()
	case GenerateBarabasiAlbert:
		g := generator.NewBarabasiAlbert[int](variant, rng, opt)
		if err := g.Configure(vertices, gen.M0, gen.M); err != nil {
			return nil, err
		}
		return g.Generate()
	default:
		return nil, fmt.Errorf("unknown generator %q: %w", gen.Kind, generator.ErrBadConfigured)
	}
}
