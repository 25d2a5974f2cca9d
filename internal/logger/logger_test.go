package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Output: &buf, Level: "warn"})
	log.Info("hidden")
	log.Warn("shown", "sku", "A1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}

	if !strings.Contains(out, "shown") || !strings.Contains(out, "sku=A1") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNew_JSONWithAttributes(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Output: &buf, Level: "debug", Format: "json"}).With("run_id", "r-1")
	log.Debug("product", "rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	if entry["run_id"] != "r-1" {
		t.Errorf("run_id = %v, want r-1", entry["run_id"])
	}

	if entry["rows"] != float64(3) {
		t.Errorf("rows = %v, want 3", entry["rows"])
	}
}

func TestSetLevel_SharedWithChildren(t *testing.T) {
	var buf bytes.Buffer

	parent := New(Options{Output: &buf, Level: "error"})
	child := parent.With("component", "sink")

	if child.Enabled(slog.LevelDebug) {
		t.Fatal("debug enabled before SetLevel")
	}

	parent.SetLevel("debug")

	if !child.Enabled(slog.LevelDebug) {
		t.Error("child did not follow parent level change")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")

	if log.Enabled(slog.LevelInfo) {
		t.Error("discard logger should not enable info")
	}
}
