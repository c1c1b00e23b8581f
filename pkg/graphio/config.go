// Package graphio reads and writes graphs and information catalogs in the
// delimited text format
//
//	origin<sep>destination[<sep>weight[<sep>type]]
//
// Lines holding a single identifier declare an isolated vertex. Blank lines
// and lines starting with '#' are ignored. Malformed lines are logged,
// counted and skipped rather than aborting the read. Paths ending in ".sz"
// are snappy-framed.
package graphio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
	"github.com/dd0wney/cluso-socialnet/pkg/validation"
)

// ErrMalformedLine is wrapped by every per-line read failure.
var ErrMalformedLine = errors.New("malformed line")

// NoColumn disables an optional column.
const NoColumn = -1

// ReaderConfig describes how edge lines are parsed.
type ReaderConfig struct {
	Directed   bool
	Weighted   bool
	Multigraph bool
	// SelfLoops keeps lines whose endpoints are equal.
	SelfLoops bool
	// Reciprocal adds the reverse of every edge on directed graphs.
	Reciprocal bool
	// Header skips the first line.
	Header       bool
	Separator    string `validate:"required"`
	WeightColumn int    `validate:"gte=-1"`
	TypeColumn   int    `validate:"gte=-1"`
}

// DefaultReaderConfig reads tab-separated directed unweighted graphs with
// the weight in the third and the type in the fourth column.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Directed:     true,
		SelfLoops:    true,
		Separator:    "\t",
		WeightColumn: 2,
		TypeColumn:   3,
	}
}

// Validate checks the configuration.
func (c ReaderConfig) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	return validation.NewConfigValidator("reader").
		When(c.WeightColumn != NoColumn, func(cv *validation.ConfigValidator) {
			cv.Custom("weight_column", func() error { return checkColumn(c.WeightColumn) })
		}).
		When(c.TypeColumn != NoColumn, func(cv *validation.ConfigValidator) {
			cv.Custom("type_column", func() error { return checkColumn(c.TypeColumn) })
		}).
		When(c.WeightColumn != NoColumn && c.WeightColumn == c.TypeColumn, func(cv *validation.ConfigValidator) {
			cv.Custom("type_column", func() error { return errors.New("weight and type share a column") })
		}).
		Validate()
}

func checkColumn(col int) error {
	if col < 2 {
		return fmt.Errorf("column %d overlaps the endpoints", col)
	}
	return nil
}

// Parser converts a field into a vertex or piece identifier.
type Parser[V any] func(string) (V, error)

// Formatter converts an identifier back to its text form.
type Formatter[V any] func(V) string

// ParseString keeps fields as they are.
func ParseString(s string) (string, error) { return s, nil }

// ParseInt64 parses base-10 integers.
func ParseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// ParseInt parses base-10 integers.
func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

func FormatString(s string) string { return s }
func FormatInt64(v int64) string   { return strconv.FormatInt(v, 10) }
func FormatInt(v int) string       { return strconv.Itoa(v) }

// LineError describes one skipped line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ReadStats summarises a read.
type ReadStats struct {
	Lines   int
	Records int
	Skipped int
	Errors  []*LineError
}

type settings struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures readers and loaders.
type Option func(*settings)

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics records record counts and load durations in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *settings) { s.metrics = r }
}

func newSettings(opts []Option) settings {
	s := settings{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
