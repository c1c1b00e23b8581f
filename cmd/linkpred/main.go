// Command linkpred scores vertex pairs with a link prediction method and,
// for pairs that are already linked, with the edge metrics.
//
//	linkpred <graph> <pairs> <method> [directed]
//	linkpred -top n <graph> <method> [directed]
//
// The graph and pair files are tab-separated. Output lines are
//
//	u<TAB>v<TAB>score<TAB>embeddedness<TAB>foaf<TAB>weight
//
// with "-" for edge metrics of missing edges. Unreadable pairs and failed
// metrics print a diagnostic on stderr and the run continues. With -top the
// pair file is replaced by the best n candidates of every vertex.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-socialnet/pkg/algorithms"
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/graphio"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

var edgeMetricNames = []string{"embeddedness", "foaf", "weight"}

type options struct {
	graphPath, pairsPath string
	method               algorithms.LinkPredictionMethod
	directed             bool
	top                  int
}

func parseArgs(args []string, stderr io.Writer) (options, bool) {
	fs := flag.NewFlagSet("linkpred", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.IntVar(&opts.top, "top", 0, "write the top n predictions of every vertex instead of scoring a pair file")
	fs.Usage = func() {
		names := make([]string, 0, len(algorithms.LinkPredictionMethods()))
		for _, m := range algorithms.LinkPredictionMethods() {
			names = append(names, m.String())
		}
		fmt.Fprintln(stderr, "Usage: linkpred <graph> <pairs> <method> [directed]")
		fmt.Fprintln(stderr, "       linkpred -top n <graph> <method> [directed]")
		fmt.Fprintf(stderr, "  method: one of %s\n", strings.Join(names, ", "))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, false
	}

	rest := fs.Args()
	positional := 3
	if opts.top > 0 {
		positional = 2
	}
	if opts.top < 0 || len(rest) < positional || len(rest) > positional+1 {
		fs.Usage()
		return opts, false
	}
	opts.graphPath = rest[0]
	if opts.top == 0 {
		opts.pairsPath = rest[1]
	}
	method, err := algorithms.ParseLinkPredictionMethod(rest[positional-1])
	if err != nil {
		fmt.Fprintf(stderr, "linkpred: %v\n", err)
		fs.Usage()
		return opts, false
	}
	opts.method = method
	if len(rest) > positional {
		if opts.directed, err = strconv.ParseBool(rest[positional]); err != nil {
			fmt.Fprintf(stderr, "linkpred: directed must be a boolean, got %q\n", rest[positional])
			fs.Usage()
			return opts, false
		}
	}
	return opts, true
}

func main() {
	opts, ok := parseArgs(os.Args[1:], os.Stderr)
	if !ok {
		return
	}

	logger := logging.DefaultLogger().With(logging.Component("linkpred"))
	reg := metrics.DefaultRegistry()

	cfg := graphio.DefaultReaderConfig()
	cfg.Directed = opts.directed
	g, _, err := graphio.LoadFile(opts.graphPath, cfg, graphio.ParseString, graphio.WithLogger(logger), graphio.WithMetrics(reg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "linkpred: %v\n", err)
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if opts.top > 0 {
		_, err := algorithms.Run("linkpred-top", reg, logger, func() (struct{}, error) {
			return struct{}{}, writeTop(context.Background(), g, out, opts)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "linkpred: %v\n", err)
		}
		return
	}

	pairs, err := os.Open(opts.pairsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "linkpred: %v\n", err)
		return
	}
	defer pairs.Close()

	failed, err := algorithms.Run("linkpred", reg, logger, func() (int, error) {
		return scorePairs(g, pairs, out, os.Stderr, opts.method)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "linkpred: %v\n", err)
		return
	}
	if failed > 0 {
		logger.Warn("pairs with failures", logging.Count(failed))
	}
}

func orientations(g *graph.Graph[string]) (graph.Orientation, graph.Orientation) {
	if g.IsDirected() {
		return graph.Out, graph.In
	}
	return graph.Und, graph.Und
}

// writeTop writes u<TAB>v<TAB>score for the best opts.top candidates of
// every vertex, in vertex index order.
func writeTop(ctx context.Context, g *graph.Graph[string], out io.Writer, opts options) error {
	lp := algorithms.DefaultLinkPredictionOptions()
	lp.Method = opts.method
	lp.TopK = opts.top
	lp.UOrientation, lp.VOrientation = orientations(g)

	results, err := algorithms.PredictLinks(ctx, g, lp)
	if err != nil {
		return err
	}
	for _, result := range results {
		for _, p := range result.Predictions {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", p.From, p.To, strconv.FormatFloat(p.Score, 'g', -1, 64)); err != nil {
				return err
			}
		}
	}
	return nil
}

// scorePairs writes one output line per readable pair and returns the
// number of records that produced a diagnostic.
func scorePairs(g *graph.Graph[string], pairs io.Reader, out, diag io.Writer, method algorithms.LinkPredictionMethod) (int, error) {
	opts := algorithms.DefaultLinkPredictionOptions()
	opts.Method = method
	uSel, vSel := orientations(g)
	opts.UOrientation, opts.VOrientation = uSel, vSel
	edgeMetrics := algorithms.EdgeMetrics[string](uSel, vSel)

	failed := 0
	sc := bufio.NewScanner(pairs)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			fmt.Fprintf(diag, "line %d: expected u<TAB>v, got %q\n", line, text)
			failed++
			continue
		}
		u, v := fields[0], fields[1]

		score, err := algorithms.PredictLinkScore(g, u, v, opts)
		if err != nil {
			return failed, err
		}
		cols := []string{u, v, strconv.FormatFloat(score, 'g', -1, 64)}
		var recordErr error
		for _, name := range edgeMetricNames {
			value, err := edgeMetrics[name](g, u, v)
			if err != nil {
				if recordErr == nil {
					recordErr = fmt.Errorf("%s: %w", name, err)
				}
				cols = append(cols, "-")
				continue
			}
			cols = append(cols, strconv.FormatFloat(value, 'g', -1, 64))
		}
		if recordErr != nil {
			fmt.Fprintf(diag, "line %d: %v\n", line, recordErr)
			failed++
		}
		fmt.Fprintln(out, strings.Join(cols, "\t"))
	}
	return failed, sc.Err()
}
