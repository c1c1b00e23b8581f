package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"
	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/propagation"
)

// SnappySuffix marks snappy-framed files.
const SnappySuffix = ".sz"

const (
	formatSnappy = "snappy"
	formatMmap   = "mmap"
)

// openInput opens path for reading: snappy-framed files are decoded as a
// stream, plain files are memory-mapped.
func openInput(path string) (io.Reader, io.Closer, string, error) {
	if strings.HasSuffix(path, SnappySuffix) {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, "", err
		}
		return snappy.NewReader(bufio.NewReader(f)), f, formatSnappy, nil
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, nil, "", err
	}
	return io.NewSectionReader(m, 0, int64(m.Len())), m, formatMmap, nil
}

// LoadFile reads a graph from path.
func LoadFile[V comparable](path string, cfg ReaderConfig, parse Parser[V], opts ...Option) (*graph.Graph[V], ReadStats, error) {
	s := newSettings(opts)
	r, closer, format, err := openInput(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("opening graph %s: %w", path, err)
	}
	defer closer.Close()

	timer := logging.StartTimer(s.logger, "graph loaded", logging.Path(path), logging.String("format", format))
	start := time.Now()
	g, stats, err := Read(r, cfg, parse, opts...)
	if err != nil {
		timer.EndError(err)
		return nil, stats, err
	}
	if s.metrics != nil {
		s.metrics.RecordLoad(format, time.Since(start))
	}
	timer.End(logging.Int("vertices", g.VertexCount()), logging.Int("edges", g.EdgeCount()),
		logging.Int("skipped", stats.Skipped))
	return g, stats, nil
}

// LoadInformation reads an information catalog from path, keeping only
// pieces whose creator is a vertex of g.
func LoadInformation[U, I comparable](path, sep string, g *graph.Graph[U], parseInfo Parser[I], parseUser Parser[U],
	opts ...Option) ([]propagation.Information[U, I], ReadStats, error) {
	r, closer, _, err := openInput(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("opening information %s: %w", path, err)
	}
	defer closer.Close()
	return ReadInformation(r, sep, parseInfo, parseUser, g.ContainsVertex, opts...)
}

// createOutput opens path for writing, snappy-framing ".sz" paths. Closing
// the returned writer flushes and closes the file.
func createOutput(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, SnappySuffix) {
		return &snappyFile{Writer: snappy.NewBufferedWriter(f), file: f}, nil
	}
	return f, nil
}

type snappyFile struct {
	*snappy.Writer
	file *os.File
}

func (s *snappyFile) Close() error {
	return errors.Join(s.Writer.Close(), s.file.Close())
}

// SaveFile writes g to path.
func SaveFile[V comparable](path string, g *graph.Graph[V], format Formatter[V], sep string) (err error) {
	out, err := createOutput(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, g, format, sep)
}

// Create opens an output file the way SaveFile does, for callers writing
// their own content such as simulation logs.
func Create(path string) (io.WriteCloser, error) {
	return createOutput(path)
}
