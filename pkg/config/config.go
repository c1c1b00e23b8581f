// Package config loads simulation run configurations from YAML.
//
// A configuration names the graph to load (or generate), the information
// catalog, the diffusion protocol with its parameters, stop conditions,
// the random seed, output paths and logging. Absent keys keep the values
// of Defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/graphio"
	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/propagation"
	"github.com/dd0wney/cluso-socialnet/pkg/validation"
)

// Identifier types accepted in graph.ids.
const (
	IDsString = "string"
	IDsInt    = "int"
)

// Generator kinds accepted in graph.generate.kind.
const (
	GenerateEmpty          = "empty"
	GenerateComplete       = "complete"
	GenerateErdosRenyi     = "erdos-renyi"
	GenerateBarabasiAlbert = "barabasi-albert"
)

// Config is one simulation run.
type Config struct {
	Graph       GraphConfig       `yaml:"graph"`
	Information InformationConfig `yaml:"information"`
	Protocol    ProtocolConfig    `yaml:"protocol"`
	Stop        StopConfig        `yaml:"stop"`
	Seed        uint64            `yaml:"seed"`
	Output      OutputConfig      `yaml:"output"`
	Log         LogConfig         `yaml:"log"`
}

// GraphConfig describes the social graph: either a file to read or a
// generator to run.
type GraphConfig struct {
	Path         string          `yaml:"path"`
	IDs          string          `yaml:"ids" validate:"oneof=string int"`
	Directed     bool            `yaml:"directed"`
	Weighted     bool            `yaml:"weighted"`
	Multigraph   bool            `yaml:"multigraph"`
	SelfLoops    bool            `yaml:"self_loops"`
	Reciprocal   bool            `yaml:"reciprocal"`
	Header       bool            `yaml:"header"`
	Separator    string          `yaml:"separator" validate:"required"`
	WeightColumn int             `yaml:"weight_column" validate:"gte=-1"`
	TypeColumn   int             `yaml:"type_column" validate:"gte=-1"`
	Generate     *GenerateConfig `yaml:"generate"`
}

// GenerateConfig builds a synthetic graph over the integer vertices
// 0..vertices-1.
type GenerateConfig struct {
	Kind        string  `yaml:"kind" validate:"oneof=empty complete erdos-renyi barabasi-albert"`
	Vertices    int     `yaml:"vertices" validate:"gte=1"`
	Probability float64 `yaml:"probability" validate:"gte=0,lte=1"`
	M0          int     `yaml:"m0"`
	M           int     `yaml:"m"`
}

// InformationConfig locates the information catalog: lines of
// id<sep>creator[<sep>timestamp].
type InformationConfig struct {
	Path      string `yaml:"path" validate:"required"`
	Separator string `yaml:"separator" validate:"required"`
}

// ProtocolConfig names a built-in protocol and its parameters. Counts set
// to -1 mean "all".
type ProtocolConfig struct {
	Name        string  `yaml:"name" validate:"required"`
	Orientation string  `yaml:"orientation" validate:"required"`
	Probability float64 `yaml:"probability"`
	NumOwn      int     `yaml:"num_own"`
	NumReceived int     `yaml:"num_received"`
	NumSeen     int     `yaml:"num_seen"`
	WaitTime    int     `yaml:"wait_time"`
	Threshold   int     `yaml:"threshold"`
	Proportion  float64 `yaml:"proportion"`
	Window      int     `yaml:"window"`
}

// StopConfig bounds a run. A zero timeout means no deadline.
type StopConfig struct {
	MaxIterations int           `yaml:"max_iterations" validate:"gte=1"`
	Timeout       time.Duration `yaml:"timeout"`
}

// OutputConfig names the result files. Empty paths are not written; paths
// ending in ".sz" are snappy-framed.
type OutputConfig struct {
	Log  string `yaml:"log"`
	JSON string `yaml:"json"`
}

// LogConfig configures the run logger. An empty file logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
}

// Defaults returns a configuration running Independent Cascade over a
// directed tab-separated graph with string identifiers.
func Defaults() *Config {
	reader := graphio.DefaultReaderConfig()
	return &Config{
		Graph: GraphConfig{
			IDs:          IDsString,
			Directed:     reader.Directed,
			SelfLoops:    reader.SelfLoops,
			Separator:    reader.Separator,
			WeightColumn: reader.WeightColumn,
			TypeColumn:   reader.TypeColumn,
		},
		Information: InformationConfig{Separator: "\t"},
		Protocol: ProtocolConfig{
			Name:        propagation.IndependentCascadeProtocol,
			Orientation: graph.In.String(),
			Probability: 0.5,
			NumOwn:      propagation.All,
			NumReceived: propagation.All,
			NumSeen:     propagation.All,
			Threshold:   1,
			Proportion:  0.5,
			Window:      1,
		},
		Stop: StopConfig{MaxIterations: propagation.DefaultMaxIterations},
		Seed: 1,
		Log:  LogConfig{Level: "info", MaxSizeMB: 100, MaxAgeDays: 28, MaxBackups: 3},
	}
}

// Parse decodes YAML over Defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the configuration at path. Relative data paths are
// resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	for _, p := range []*string{&c.Graph.Path, &c.Information.Path, &c.Output.Log, &c.Output.JSON, &c.Log.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks struct constraints and the cross-field rules, returning
// every violation joined.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	cv := validation.NewConfigValidator("config")
	cv.When(c.Graph.Generate == nil, func(cv *validation.ConfigValidator) {
		cv.Required("graph.path", c.Graph.Path)
	})
	cv.When(c.Graph.Generate != nil, func(cv *validation.ConfigValidator) {
		cv.Custom("graph.generate", func() error {
			if c.Graph.Path != "" {
				return errors.New("path and generate are mutually exclusive")
			}
			if c.Graph.IDs != IDsInt {
				return errors.New("generated graphs need ids: int")
			}
			gen := c.Graph.Generate
			if gen.Kind == GenerateBarabasiAlbert && (gen.M < 1 || gen.M > gen.M0 || gen.M0 > gen.Vertices) {
				return fmt.Errorf("barabasi-albert needs 1 <= m <= m0 <= vertices, got m=%d m0=%d", gen.M, gen.M0)
			}
			return nil
		})
	})
	cv.Custom("stop.timeout", func() error {
		if c.Stop.Timeout < 0 {
			return fmt.Errorf("negative timeout %s", c.Stop.Timeout)
		}
		return nil
	})
	cv.Custom("graph", func() error { return c.ReaderConfig().Validate() })
	cv.OneOf("protocol.name", c.Protocol.Name, propagation.ProtocolNames())
	cv.Custom("protocol", func() error {
		params, err := c.ProtocolParams()
		if err != nil {
			return err
		}
		_, err = propagation.BuildProtocol(c.Protocol.Name, params)
		return err
	})
	return cv.Validate()
}

// ReaderConfig returns the graph reader settings.
func (c *Config) ReaderConfig() graphio.ReaderConfig {
	return graphio.ReaderConfig{
		Directed:     c.Graph.Directed,
		Weighted:     c.Graph.Weighted,
		Multigraph:   c.Graph.Multigraph,
		SelfLoops:    c.Graph.SelfLoops,
		Reciprocal:   c.Graph.Reciprocal,
		Header:       c.Graph.Header,
		Separator:    c.Graph.Separator,
		WeightColumn: c.Graph.WeightColumn,
		TypeColumn:   c.Graph.TypeColumn,
	}
}

// ProtocolParams returns the protocol parameters.
func (c *Config) ProtocolParams() (propagation.ProtocolParams, error) {
	o, err := graph.ParseOrientation(c.Protocol.Orientation)
	if err != nil {
		return propagation.ProtocolParams{}, err
	}
	return propagation.ProtocolParams{
		Orientation: o,
		Probability: c.Protocol.Probability,
		NumOwn:      c.Protocol.NumOwn,
		NumReceived: c.Protocol.NumReceived,
		NumSeen:     c.Protocol.NumSeen,
		WaitTime:    c.Protocol.WaitTime,
		Threshold:   c.Protocol.Threshold,
		Proportion:  c.Protocol.Proportion,
		Window:      c.Protocol.Window,
	}, nil
}

// BuildProtocol builds the configured protocol.
func (c *Config) BuildProtocol() (*propagation.Protocol, error) {
	params, err := c.ProtocolParams()
	if err != nil {
		return nil, err
	}
	return propagation.BuildProtocol(c.Protocol.Name, params)
}

// StopCondition stops a run when nothing more can propagate or after
// max_iterations iterations.
func (c *Config) StopCondition() propagation.StopCondition {
	return propagation.AnyStop(propagation.NoMorePropagation(), propagation.MaxIterations(c.Stop.MaxIterations))
}

// Logger builds the run logger: a rotating file logger when log.file is
// set, stderr otherwise. The returned close function is never nil.
func (c *Config) Logger() (logging.Logger, func() error) {
	level := logging.ParseLevel(c.Log.Level)
	if c.Log.File == "" {
		return logging.NewJSONLogger(os.Stderr, level), func() error { return nil }
	}
	fl := logging.NewFileLogger(logging.FileConfig{
		Path:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxAgeDays: c.Log.MaxAgeDays,
		MaxBackups: c.Log.MaxBackups,
	}, level)
	return fl, fl.Close
}
