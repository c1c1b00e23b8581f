package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"ERROR":   ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := Vertex(42); f.Key != "vertex" || f.Value != "42" {
		t.Errorf("Vertex(42) = %+v", f)
	}
	if f := Iteration(3); f.Key != "iteration" || f.Value != 3 {
		t.Errorf("Iteration(3) = %+v", f)
	}
	if f := Protocol("push"); f.Key != "protocol" || f.Value != "push" {
		t.Errorf("Protocol = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error(boom) = %+v", f)
	}
	if f := Latency(2 * time.Second); f.Value != "2s" {
		t.Errorf("Latency = %+v", f)
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("graph loaded", Count(12), Path("edges.txt"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "graph loaded" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Fields["count"] != float64(12) || e.Fields["path"] != "edges.txt" {
		t.Errorf("unexpected fields %+v", e.Fields)
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Time); err != nil {
		t.Errorf("bad timestamp %q: %v", e.Time, err)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("unexpected levels %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(RunID("r-1"), Protocol("ic"))

	child.Info("iteration", Iteration(1))
	parent.Info("plain")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Fields["run_id"] != "r-1" || entries[0].Fields["protocol"] != "ic" {
		t.Errorf("child fields missing: %+v", entries[0].Fields)
	}
	if entries[1].Fields != nil {
		t.Errorf("parent gained child fields: %+v", entries[1].Fields)
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, ErrorLevel)
	logger.Info("dropped")
	logger.SetLevel(DebugLevel)
	if logger.GetLevel() != DebugLevel {
		t.Fatalf("GetLevel = %v", logger.GetLevel())
	}
	logger.Debug("kept")
	if entries := decodeLines(t, &buf); len(entries) != 1 || entries[0].Message != "kept" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	StartTimer(logger, "simulate", Protocol("push")).End(Iteration(4))
	StartTimer(logger, "load").EndError(errors.New("bad line"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Fields["latency"] == nil || entries[0].Fields["iteration"] != float64(4) {
		t.Errorf("End fields %+v", entries[0].Fields)
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "bad line" {
		t.Errorf("EndError entry %+v", entries[1])
	}
}

func TestDefaultLogger(t *testing.T) {
	original := DefaultLogger()
	defer SetDefaultLogger(original)

	nop := NewNopLogger()
	SetDefaultLogger(nop)
	if DefaultLogger() != nop {
		t.Error("SetDefaultLogger did not replace the default")
	}
	if OrDefault(nil) != nop {
		t.Error("OrDefault(nil) should return the default logger")
	}
	var buf bytes.Buffer
	own := NewJSONLogger(&buf, InfoLevel)
	if OrDefault(own) != Logger(own) {
		t.Error("OrDefault should keep a non-nil logger")
	}
}

func TestNopLogger(t *testing.T) {
	nop := NewNopLogger()
	nop.SetLevel(DebugLevel)
	if nop.GetLevel() <= ErrorLevel {
		t.Errorf("GetLevel = %v, want above ERROR", nop.GetLevel())
	}
	if nop.With(Component("x")) != nop {
		t.Error("With should return the same discarding logger")
	}
	nop.Error("dropped", Count(1))
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	logger := NewFileLogger(FileConfig{Path: path, MaxSizeMB: 1}, InfoLevel)

	logger.Info("written", Vertex("alice"))
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	entries := decodeLines(t, bytes.NewBuffer(data))
	if len(entries) != 1 || entries[0].Fields["vertex"] != "alice" {
		t.Errorf("unexpected file contents %q", data)
	}
}
