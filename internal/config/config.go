// Package config provides configuration management for the catalog exporter.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"catexport/internal/catalog"
	"catexport/internal/extractor"
	"catexport/pkg/utils"
)

// Configuration validation errors.
var (
	ErrMissingSource            = errors.New("source.file or source.url is required")
	ErrConflictingSource        = errors.New("source.file and source.url are mutually exclusive")
	ErrInvalidSourceURL         = errors.New("source.url must be an absolute http(s) URL")
	ErrInvalidBufferSize        = errors.New("source.buffer_size_kb must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingOutputPath        = errors.New("output.path is required")
	ErrInvalidOutputFormat      = errors.New("output.format must be 'csv' or 'sqlite'")
	ErrInvalidTableName         = errors.New("output.table must be a non-empty identifier")
	ErrInvalidPreviewRows       = errors.New("output.preview_rows must be non-negative")
	ErrMissingTitleKeys         = errors.New("field_keys.title needs at least one key")
	ErrMissingBodyKeys          = errors.New("field_keys.body needs at least one key")
	ErrEmptyLabels              = errors.New("labels: every field needs at least one label")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Output formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Config represents the complete exporter configuration.
type Config struct {
	Exporter ExporterConfig `yaml:"exporter"`
}

// ExporterConfig contains exporter-specific settings.
type ExporterConfig struct {
	Source    SourceConfig    `yaml:"source"`
	Retry     RetryPolicy     `yaml:"retry"`
	Output    OutputConfig    `yaml:"output"`
	Labels    LabelsConfig    `yaml:"labels"`
	FieldKeys FieldKeysConfig `yaml:"field_keys"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig points at the translation export.
type SourceConfig struct {
	File         string            `yaml:"file"`
	URL          string            `yaml:"url"`
	Headers      map[string]string `yaml:"headers,omitempty"`
	BufferSizeKb int               `yaml:"buffer_size_kb"`
}

// IsLocalFile returns true if this source uses a local file.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// RetryPolicy defines retry behavior for remote sources.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where and how rows are written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`
	Table       string `yaml:"table"`
	PreviewPath string `yaml:"preview_path"`
	PreviewRows int    `yaml:"preview_rows"`
	CRLF        bool   `yaml:"crlf"`
	BOM         bool   `yaml:"bom"`
}

// LabelsConfig lists the lead-in synonyms per field.
type LabelsConfig struct {
	Allergen           []string `yaml:"allergen"`
	Ingredients        []string `yaml:"ingredients"`
	Storage            []string `yaml:"storage"`
	Weight             []string `yaml:"weight"`
	Origin             []string `yaml:"origin"`
	Nutrients          []string `yaml:"nutrients"`
	DescriptionMarkers []string `yaml:"description_markers"`
}

// FieldKeysConfig lists the record keys carrying the title and the body markup.
type FieldKeysConfig struct {
	Title []string `yaml:"title"`
	Body  []string `yaml:"body"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration that works for the standard export.
func DefaultConfig() *Config {
	table := extractor.DefaultLabelTable()

	return &Config{
		Exporter: ExporterConfig{
			Source: SourceConfig{
				BufferSizeKb: 64 * 1024,
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Output: OutputConfig{
				Path:        "output.csv",
				Format:      FormatCSV,
				Table:       "catalog_rows",
				PreviewRows: 50,
				CRLF:        true,
			},
			Labels: LabelsConfig{
				Allergen:           table.Labels(extractor.FieldAllergen),
				Ingredients:        table.Labels(extractor.FieldIngredients),
				Storage:            table.Labels(extractor.FieldStorage),
				Weight:             table.Labels(extractor.FieldWeight),
				Origin:             table.Labels(extractor.FieldOrigin),
				Nutrients:          table.Labels(extractor.FieldNutrients),
				DescriptionMarkers: table.DescriptionMarkers,
			},
			FieldKeys: FieldKeysConfig{
				Title: []string{"title"},
				Body:  []string{"body", "body_html"},
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of DefaultConfig.
// Lists present in the file replace the default lists. The result is not validated
// so command-line overrides can be applied first.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	e := &c.Exporter

	if e.Source.File == "" && e.Source.URL == "" {
		return ErrMissingSource
	}

	if e.Source.File != "" && e.Source.URL != "" {
		return ErrConflictingSource
	}

	if e.Source.URL != "" {
		if !utils.NewHTTPHelper().IsValidURL(e.Source.URL) {
			return fmt.Errorf("%w: %q", ErrInvalidSourceURL, e.Source.URL)
		}

		if e.Source.BufferSizeKb <= 0 {
			return ErrInvalidBufferSize
		}

		if err := e.Retry.Validate(); err != nil {
			return err
		}
	}

	if e.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if e.Output.Format != FormatCSV && e.Output.Format != FormatSQLite {
		return ErrInvalidOutputFormat
	}

	if e.Output.Format == FormatSQLite && !isIdentifier(e.Output.Table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, e.Output.Table)
	}

	if e.Output.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	if len(e.FieldKeys.Title) == 0 {
		return ErrMissingTitleKeys
	}

	if len(e.FieldKeys.Body) == 0 {
		return ErrMissingBodyKeys
	}

	for _, rule := range c.LabelTable().Rules {
		if len(rule.Labels) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyLabels, rule.Field)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[e.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if e.Logging.Format != "text" && e.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Validate checks the retry policy.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	return nil
}

// LabelTable builds the extractor table from the labels section.
func (c *Config) LabelTable() extractor.LabelTable {
	l := c.Exporter.Labels

	return extractor.LabelTable{
		Rules: []extractor.Rule{
			{Field: extractor.FieldAllergen, Labels: l.Allergen},
			{Field: extractor.FieldIngredients, Labels: l.Ingredients},
			{Field: extractor.FieldStorage, Labels: l.Storage},
			{Field: extractor.FieldWeight, Labels: l.Weight},
			{Field: extractor.FieldOrigin, Labels: l.Origin},
			{Field: extractor.FieldNutrients, Labels: l.Nutrients},
		},
		DescriptionMarkers: l.DescriptionMarkers,
	}
}

// KeyResolver builds the record key resolver from the field_keys section.
func (c *Config) KeyResolver() *catalog.KeyResolver {
	return catalog.NewKeyResolver(c.Exporter.FieldKeys.Title, c.Exporter.FieldKeys.Body)
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Output: %s (%s)}",
		c.Exporter.Source.GetSource(),
		c.Exporter.Output.Path,
		c.Exporter.Output.Format,
	)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
