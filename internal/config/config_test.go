package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catexport/internal/extractor"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const validConfigYAML = `
exporter:
  source:
    file: "./export.json"
  output:
    path: "./out/catalog.sqlite"
    format: "sqlite"
    table: "products_cz"
    preview_path: "./out/preview.md"
    preview_rows: 10
  labels:
    weight: ["Hmotnost", "Váha"]
  field_keys:
    body: ["body_html"]
  logging:
    level: "debug"
    format: "json"
`

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Exporter.Output.Format != FormatCSV {
		t.Errorf("Output.Format = %s, want csv", cfg.Exporter.Output.Format)
	}

	if !cfg.Exporter.Output.CRLF {
		t.Error("Output.CRLF should default to true")
	}

	table := cfg.LabelTable()
	def := extractor.DefaultLabelTable()

	for _, rule := range def.Rules {
		got := table.Labels(rule.Field)
		if len(got) != len(rule.Labels) {
			t.Errorf("labels for %s = %v, want %v", rule.Field, got, rule.Labels)
		}
	}

	if len(table.DescriptionMarkers) != 7 {
		t.Errorf("DescriptionMarkers = %v, want 7 markers", table.DescriptionMarkers)
	}

	// A default config only needs a source.
	cfg.Exporter.Source.File = "export.json"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Exporter.Source.File != "./export.json" {
		t.Errorf("Source.File = %s", cfg.Exporter.Source.File)
	}

	if cfg.Exporter.Output.Table != "products_cz" || cfg.Exporter.Output.PreviewRows != 10 {
		t.Errorf("Output = %+v", cfg.Exporter.Output)
	}

	// Overridden list replaces the default.
	if got := cfg.LabelTable().Labels(extractor.FieldWeight); len(got) != 2 || got[1] != "Váha" {
		t.Errorf("weight labels = %v", got)
	}

	// Untouched lists keep their defaults.
	if got := cfg.LabelTable().Labels(extractor.FieldIngredients); len(got) != 2 {
		t.Errorf("ingredients labels = %v", got)
	}

	if got := cfg.Exporter.FieldKeys.Body; len(got) != 1 || got[0] != "body_html" {
		t.Errorf("body keys = %v", got)
	}

	// Retry defaults survive a file that does not mention them.
	if cfg.Exporter.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Exporter.Retry.MaxAttempts)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "exporter: [unclosed")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{
			name:   "missing source",
			modify: func(c *Config) { c.Exporter.Source.File = "" },
			want:   ErrMissingSource,
		},
		{
			name:   "both sources",
			modify: func(c *Config) { c.Exporter.Source.URL = "http://example.com/export.json" },
			want:   ErrConflictingSource,
		},
		{
			name: "bad retry for url source",
			modify: func(c *Config) {
				c.Exporter.Source.File = ""
				c.Exporter.Source.URL = "http://example.com/export.json"
				c.Exporter.Retry.MaxAttempts = 0
			},
			want: ErrInvalidMaxAttempts,
		},
		{
			name: "relative url",
			modify: func(c *Config) {
				c.Exporter.Source.File = ""
				c.Exporter.Source.URL = "example.com/export.json"
			},
			want: ErrInvalidSourceURL,
		},
		{
			name: "zero buffer for url source",
			modify: func(c *Config) {
				c.Exporter.Source.File = ""
				c.Exporter.Source.URL = "http://example.com/export.json"
				c.Exporter.Source.BufferSizeKb = 0
			},
			want: ErrInvalidBufferSize,
		},
		{
			name:   "missing output path",
			modify: func(c *Config) { c.Exporter.Output.Path = "" },
			want:   ErrMissingOutputPath,
		},
		{
			name:   "unknown format",
			modify: func(c *Config) { c.Exporter.Output.Format = "xlsx" },
			want:   ErrInvalidOutputFormat,
		},
		{
			name: "bad table name",
			modify: func(c *Config) {
				c.Exporter.Output.Format = FormatSQLite
				c.Exporter.Output.Table = "rows; DROP TABLE x"
			},
			want: ErrInvalidTableName,
		},
		{
			name:   "negative preview rows",
			modify: func(c *Config) { c.Exporter.Output.PreviewRows = -1 },
			want:   ErrInvalidPreviewRows,
		},
		{
			name:   "no title keys",
			modify: func(c *Config) { c.Exporter.FieldKeys.Title = nil },
			want:   ErrMissingTitleKeys,
		},
		{
			name:   "no body keys",
			modify: func(c *Config) { c.Exporter.FieldKeys.Body = []string{} },
			want:   ErrMissingBodyKeys,
		},
		{
			name:   "empty label list",
			modify: func(c *Config) { c.Exporter.Labels.Origin = nil },
			want:   ErrEmptyLabels,
		},
		{
			name:   "bad log level",
			modify: func(c *Config) { c.Exporter.Logging.Level = "trace" },
			want:   ErrInvalidLogLevel,
		},
		{
			name:   "bad log format",
			modify: func(c *Config) { c.Exporter.Logging.Format = "xml" },
			want:   ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Exporter.Source.File = "export.json"
			tt.modify(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := &RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond}, // Capped
	}

	for _, tt := range tests {
		if got := rp.GetRetryDelay(tt.attempt); got != tt.want {
			t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetryPolicy_GetTimeout(t *testing.T) {
	rp := &RetryPolicy{TimeoutSec: 30}
	if rp.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s", rp.GetTimeout())
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exporter.Source.URL = "https://example.com/export.jsonl"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Exporter.Source.URL != cfg.Exporter.Source.URL {
		t.Errorf("Source.URL = %s", loaded.Exporter.Source.URL)
	}

	if err := loaded.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestKeyResolver(t *testing.T) {
	cfg := DefaultConfig()
	r := cfg.KeyResolver()

	if r.Resolve("body_html").String() != "body" {
		t.Errorf("body_html resolves to %s", r.Resolve("body_html"))
	}
}
