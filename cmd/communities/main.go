// Command communities detects communities in a tab-separated graph and
// writes one vertex<TAB>community line per vertex.
//
//	communities [-dendogram merges.tsv -k n] <graph> <out> [maxIter] [seed]
//
// Without -dendogram the partition comes from label propagation; with it,
// the merge file is cut into at least k communities.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-socialnet/pkg/algorithms"
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/graphio"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

const defaultMaxIterations = 100

type options struct {
	graphPath, outPath string
	dendogram          string
	k                  int
	maxIterations      int
	seed               uint64
}

func parseArgs(args []string, stderr io.Writer) (options, bool) {
	fs := flag.NewFlagSet("communities", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := options{maxIterations: defaultMaxIterations, seed: 1}
	fs.StringVar(&opts.dendogram, "dendogram", "", "merge file (childA<TAB>childB<TAB>parent) to cut instead of running label propagation")
	fs.IntVar(&opts.k, "k", 2, "number of communities to cut the dendogram into")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: communities [-dendogram merges.tsv -k n] <graph> <out> [maxIter] [seed]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, false
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 4 || opts.k < 1 {
		fs.Usage()
		return opts, false
	}
	opts.graphPath, opts.outPath = rest[0], rest[1]
	if len(rest) > 2 {
		n, err := strconv.Atoi(rest[2])
		if err != nil || n < 1 {
			fmt.Fprintf(stderr, "communities: maxIter must be a positive integer, got %q\n", rest[2])
			fs.Usage()
			return opts, false
		}
		opts.maxIterations = n
	}
	if len(rest) > 3 {
		s, err := strconv.ParseUint(rest[3], 10, 64)
		if err != nil {
			fmt.Fprintf(stderr, "communities: seed must be an unsigned integer, got %q\n", rest[3])
			fs.Usage()
			return opts, false
		}
		opts.seed = s
	}
	return opts, true
}

func main() {
	opts, ok := parseArgs(os.Args[1:], os.Stderr)
	if !ok {
		return
	}
	logger := logging.DefaultLogger().With(logging.Component("communities"))
	reg := metrics.DefaultRegistry()

	cfg := graphio.DefaultReaderConfig()
	cfg.Directed = false
	g, _, err := graphio.LoadFile(opts.graphPath, cfg, graphio.ParseString,
		graphio.WithLogger(logger), graphio.WithMetrics(reg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "communities: %v\n", err)
		return
	}
	reg.RecordGraph(g.VertexCount(), g.EdgeCount())

	result, err := detect(g, opts, reg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "communities: %v\n", err)
		return
	}
	components := algorithms.WeakComponents(g)

	out, err := graphio.Create(opts.outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "communities: %v\n", err)
		return
	}
	if err := writePartition(out, g, result); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "communities: %v\n", err)
		return
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "communities: %v\n", err)
		return
	}

	fmt.Printf("%d vertices, %d edges, %d weak components\n", g.VertexCount(), g.EdgeCount(), len(components.Communities))
	fmt.Printf("%d communities, modularity %.4f, average clustering %.4f\n",
		len(result.Communities), result.Modularity, algorithms.AverageClusteringCoefficient(g))
}

// detect cuts the dendogram when one is given and runs label propagation
// otherwise.
func detect(g *graph.Graph[string], opts options, reg *metrics.Registry, logger logging.Logger) (*algorithms.CommunityDetectionResult[string], error) {
	if opts.dendogram != "" {
		return algorithms.Run("dendogram-cut", reg, logger, func() (*algorithms.CommunityDetectionResult[string], error) {
			f, err := os.Open(opts.dendogram)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			d, err := algorithms.ReadDendogram(f, g)
			if err != nil {
				return nil, err
			}
			return d.Cut(opts.k), nil
		})
	}
	return algorithms.Run("label-propagation", reg, logger, func() (*algorithms.CommunityDetectionResult[string], error) {
		rng := rand.New(rand.NewPCG(opts.seed, opts.seed))
		return algorithms.LabelPropagation(g, opts.maxIterations, rng), nil
	})
}

// writePartition writes vertices in index order.
func writePartition(w io.Writer, g *graph.Graph[string], result *algorithms.CommunityDetectionResult[string]) error {
	bw := bufio.NewWriter(w)
	for v := range g.Nodes() {
		c, _ := result.Community(v)
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", v, c); err != nil {
			return err
		}
	}
	return bw.Flush()
}
