// Package logging provides the structured JSON logger used by the graph
// readers, generators, simulator and command-line drivers.
package logging

import (
	"io"
	"sync"
	"time"
)

// Level orders log lines by severity. A logger drops lines below its level.
type Level int

const (
	DebugLevel Level = iota // one line per iteration, record or generated edge
	InfoLevel               // loads, runs and outputs
	WarnLevel               // skipped input lines, clamped parameters
	ErrorLevel              // the operation gave up
)

// String is the name written in the "level" key.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel reads a level name from a config file. Unknown names give InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DebugLevel
	case "INFO", "info":
		return InfoLevel
	case "WARN", "warn", "WARNING", "warning":
		return WarnLevel
	case "ERROR", "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is one key of the "fields" object of a log line.
type Field struct {
	Key   string
	Value any
}

// Logger is what readers, generators and the simulator log through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a logger that adds fields to every line.
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	writer io.Writer
	level  Level
	fields []Field
	mu     *sync.Mutex // one per writer, shared by loggers made with With
}

// LogEntry is the shape of a JSONLogger line.
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger drops every line. GetLevel reports a level above ErrorLevel.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) SetLevel(Level)         {}
func (NopLogger) GetLevel() Level        { return ErrorLevel + 1 }

func NewNopLogger() Logger {
	return NopLogger{}
}

// TimedOperation logs a message with the time elapsed since it was started.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
