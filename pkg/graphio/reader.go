package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/propagation"
)

const maxLineSize = 1 << 20

// lineScanner yields the meaningful lines of r with their 1-based numbers.
type lineScanner struct {
	sc     *bufio.Scanner
	header bool
	line   int
}

func newLineScanner(r io.Reader, header bool) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineScanner{sc: sc, header: header}
}

func (s *lineScanner) next() (string, bool) {
	for s.sc.Scan() {
		s.line++
		if s.header && s.line == 1 {
			continue
		}
		text := strings.TrimRight(s.sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return text, true
	}
	return "", false
}

func (s *lineScanner) err() error { return s.sc.Err() }

// skip records a malformed line and logs it.
func (st *ReadStats) skip(logger logging.Logger, line int, text string, err error) {
	lineErr := &LineError{Line: line, Text: text, Err: fmt.Errorf("%w: %v", ErrMalformedLine, err)}
	st.Skipped++
	st.Errors = append(st.Errors, lineErr)
	logger.Warn("skipping line", logging.Line(line), logging.Error(err))
}

// Read builds a graph from edge lines. Malformed lines are skipped and
// reported in ReadStats; the returned error covers configuration and I/O
// failures only.
func Read[V comparable](r io.Reader, cfg ReaderConfig, parse Parser[V], opts ...Option) (*graph.Graph[V], ReadStats, error) {
	var stats ReadStats
	if err := cfg.Validate(); err != nil {
		return nil, stats, err
	}
	s := newSettings(opts)

	g := graph.NewOf[V](cfg.Directed, cfg.Weighted, cfg.Multigraph, graph.WithSelfLoops(cfg.SelfLoops))
	sc := newLineScanner(r, cfg.Header)
	for {
		text, ok := sc.next()
		if !ok {
			break
		}
		stats.Lines++
		fields := strings.Split(text, cfg.Separator)

		orig, err := parse(fields[0])
		if err != nil {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("origin %q: %w", fields[0], err))
			continue
		}
		if len(fields) == 1 {
			g.AddNode(orig)
			stats.Records++
			continue
		}
		dest, err := parse(fields[1])
		if err != nil {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("destination %q: %w", fields[1], err))
			continue
		}
		weight, typ, err := attributes(fields, cfg)
		if err != nil {
			stats.skip(s.logger, sc.line, text, err)
			continue
		}
		if orig == dest && !cfg.SelfLoops {
			g.AddNode(orig)
			continue
		}
		g.AddTypedEdge(orig, dest, weight, typ)
		if cfg.Reciprocal && cfg.Directed && orig != dest {
			g.AddTypedEdge(dest, orig, weight, typ)
		}
		stats.Records++
	}
	if err := sc.err(); err != nil {
		return nil, stats, fmt.Errorf("reading graph: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordRecords("edge", stats.Records, stats.Skipped)
		s.metrics.RecordGraph(g.VertexCount(), g.EdgeCount())
	}
	s.logger.Debug("graph read",
		logging.Int("vertices", g.VertexCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Int("skipped", stats.Skipped))
	return g, stats, nil
}

func attributes(fields []string, cfg ReaderConfig) (float64, int, error) {
	weight, typ := graph.DefaultWeight, graph.DefaultType
	if cfg.WeightColumn != NoColumn && cfg.WeightColumn < len(fields) && fields[cfg.WeightColumn] != "" {
		w, err := strconv.ParseFloat(fields[cfg.WeightColumn], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("weight %q: %w", fields[cfg.WeightColumn], err)
		}
		weight = w
	}
	if cfg.TypeColumn != NoColumn && cfg.TypeColumn < len(fields) && fields[cfg.TypeColumn] != "" {
		t, err := strconv.Atoi(fields[cfg.TypeColumn])
		if err != nil {
			return 0, 0, fmt.Errorf("type %q: %w", fields[cfg.TypeColumn], err)
		}
		typ = t
	}
	return weight, typ, nil
}

// ReadInformation reads an information catalog with lines
// piece<sep>creator[<sep>timestamp]. Malformed lines and pieces whose
// creator is rejected by accept are skipped.
func ReadInformation[U, I comparable](r io.Reader, sep string, parseInfo Parser[I], parseUser Parser[U],
	accept func(U) bool, opts ...Option) ([]propagation.Information[U, I], ReadStats, error) {
	s := newSettings(opts)
	var (
		stats  ReadStats
		pieces []propagation.Information[U, I]
	)
	sc := newLineScanner(r, false)
	for {
		text, ok := sc.next()
		if !ok {
			break
		}
		stats.Lines++
		fields := strings.Split(text, sep)
		if len(fields) < 2 {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("expected at least 2 fields, got %d", len(fields)))
			continue
		}
		id, err := parseInfo(fields[0])
		if err != nil {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("piece %q: %w", fields[0], err))
			continue
		}
		creator, err := parseUser(fields[1])
		if err != nil {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("creator %q: %w", fields[1], err))
			continue
		}
		if accept != nil && !accept(creator) {
			stats.skip(s.logger, sc.line, text, fmt.Errorf("creator %q is not a user", fields[1]))
			continue
		}
		p := propagation.Information[U, I]{ID: id, Creator: creator}
		if len(fields) > 2 && fields[2] != "" {
			ts, err := strconv.Atoi(fields[2])
			if err != nil {
				stats.skip(s.logger, sc.line, text, fmt.Errorf("timestamp %q: %w", fields[2], err))
				continue
			}
			p.Timestamp = ts
		}
		pieces = append(pieces, p)
		stats.Records++
	}
	if err := sc.err(); err != nil {
		return nil, stats, fmt.Errorf("reading information: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordRecords("information", stats.Records, stats.Skipped)
	}
	return pieces, stats, nil
}
