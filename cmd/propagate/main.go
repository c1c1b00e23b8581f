// Command propagate runs one information diffusion simulation described by a
// YAML configuration file.
//
//	propagate <config.yaml>
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-socialnet/pkg/config"
	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/graphio"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
	"github.com/dd0wney/cluso-socialnet/pkg/propagation"
)

const usage = "Usage: propagate <config.yaml>"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		return
	}
	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "propagate: %v\n", err)
		fmt.Fprintln(os.Stderr, usage)
		return
	}

	logger, closeLog := cfg.Logger()
	defer closeLog()
	logger = logger.With(logging.Component("propagate"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Stop.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Stop.Timeout)
		defer cancel()
	}

	start := time.Now()
	reg := metrics.DefaultRegistry()
	switch cfg.Graph.IDs {
	case config.IDsInt:
		err = run(ctx, cfg, logger, reg, graphio.ParseInt, func() (*graph.Graph[int], error) {
			if cfg.Graph.Generate != nil {
				rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
				return cfg.Graph.Generate.Build(cfg.Graph, rng, logger)
			}
			return loadGraph(cfg, logger, reg, graphio.ParseInt)
		})
	default:
		err = run(ctx, cfg, logger, reg, graphio.ParseString, func() (*graph.Graph[string], error) {
			return loadGraph(cfg, logger, reg, graphio.ParseString)
		})
	}
	reg.RecordProcess(start)
	if err != nil {
		logger.Error("run failed", logging.Error(err))
		fmt.Fprintf(os.Stderr, "propagate: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func loadGraph[U comparable](cfg *config.Config, logger logging.Logger, reg *metrics.Registry,
	parse graphio.Parser[U]) (*graph.Graph[U], error) {
	g, _, err := graphio.LoadFile(cfg.Graph.Path, cfg.ReaderConfig(), parse,
		graphio.WithLogger(logger), graphio.WithMetrics(reg))
	return g, err
}

// run loads the inputs, simulates and writes the outputs. Outputs of a run
// cut short by cancellation are still written.
func run[U comparable](ctx context.Context, cfg *config.Config, logger logging.Logger, reg *metrics.Registry,
	parseUser graphio.Parser[U], load func() (*graph.Graph[U], error)) error {
	g, err := load()
	if err != nil {
		return err
	}
	reg.RecordGraph(g.VertexCount(), g.EdgeCount())

	pieces, stats, err := graphio.LoadInformation(cfg.Information.Path, cfg.Information.Separator, g,
		graphio.ParseString, parseUser, graphio.WithLogger(logger), graphio.WithMetrics(reg))
	if err != nil {
		return err
	}
	if stats.Skipped > 0 {
		logger.Warn("information lines skipped", logging.Count(stats.Skipped), logging.Path(cfg.Information.Path))
	}

	data, err := propagation.NewData(g, pieces)
	if err != nil {
		return err
	}
	protocol, err := cfg.BuildProtocol()
	if err != nil {
		return err
	}

	sim := propagation.NewSimulator[U, string](protocol,
		propagation.WithSeed(cfg.Seed),
		propagation.WithStop(cfg.StopCondition()),
		propagation.WithLogger(logger),
		propagation.WithMetrics(reg),
	)
	result, runErr := sim.Run(ctx, data)
	if result == nil {
		return runErr
	}

	if err := writeOutput(cfg.Output.Log, result.WriteLog); err != nil {
		return err
	}
	if err := writeOutput(cfg.Output.JSON, result.WriteJSON); err != nil {
		return err
	}

	fmt.Printf("run %s: %s, %d users, %d pieces, %d iterations, stopped: %s\n",
		result.RunID, protocol.Name(), data.NumUsers(), data.NumInformation(), result.NumIterations(), result.Reason)
	for idx, piece := range data.Pieces() {
		if idx == 10 {
			fmt.Printf("  ... %d more\n", data.NumInformation()-idx)
			break
		}
		fmt.Printf("  %v\treach %d\n", piece.ID, result.Reach(piece.ID))
	}
	return runErr
}

// writeOutput writes one result file; an empty path writes nothing.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return nil
	}
	out, err := graphio.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return write(out)
}
