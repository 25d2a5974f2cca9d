// Package main provides the exporter command that flattens a translation export into a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"

	"catexport/internal/config"
	"catexport/internal/logger"
	"catexport/internal/normalizer"
	"catexport/internal/sink"
	"catexport/internal/source"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	inputPath := flag.String("input", "", "Path to the translation export (JSON array or JSON Lines)")
	inputURL := flag.String("url", "", "URL of the translation export")
	outputPath := flag.String("output", "", "Path of the output table")
	format := flag.String("format", "", "Output format: csv or sqlite")
	previewPath := flag.String("preview", "", "Optional markdown preview path")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	cfg := config.DefaultConfig()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	applyFlags(cfg, *inputPath, *inputURL, *outputPath, *format, *previewPath, *logLevel)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Initialize Logger
	log := logger.New(logger.Options{
		Level:  cfg.Exporter.Logging.Level,
		Format: cfg.Exporter.Logging.Format,
	}).With("run_id", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("❌ Export failed", "error", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config, input, url, output, format, preview, level string) {
	e := &cfg.Exporter

	if input != "" {
		e.Source.File = input
		e.Source.URL = ""
	}

	if url != "" {
		e.Source.URL = url
		e.Source.File = ""
	}

	if output != "" {
		e.Output.Path = output
	}

	if format != "" {
		e.Output.Format = format
	}

	if preview != "" {
		e.Output.PreviewPath = preview
	}

	if level != "" {
		e.Logging.Level = level
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	startTime := time.Now()

	log.Info("🚀 Starting catalog export", "source", cfg.Exporter.Source.GetSource(), "output", cfg.Exporter.Output.Path)

	// 2. Ingestion
	// ------------
	loader := source.NewLoaderWithConfig(&cfg.Exporter.Retry, cfg.Exporter.Source.BufferSizeKb)
	loader.SetHeaders(cfg.Exporter.Source.Headers)

	records, err := loader.Load(ctx, cfg.Exporter.Source)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}

	log.Info("✅ Loaded records", "records", len(records), "elapsed", time.Since(startTime))

	// 3. Processing and output
	// ------------------------
	w, err := sink.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	processor := normalizer.NewProcessorWithConfig(cfg.LabelTable(), cfg.KeyResolver(), log)

	summary, err := processor.Process(ctx, records, w)
	if err != nil {
		// Leave any previous output in place rather than publish a partial one
		if abortErr := sink.Abort(w); abortErr != nil {
			log.Warn("⚠️ Failed to discard partial output", "error", abortErr)
		}

		return err
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	// 4. Final Report
	// ---------------
	log.Info("✨ Export complete",
		"products", summary.Products,
		"rows", summary.Rows,
		"skipped", summary.MissingIdentifier+summary.UnknownKey,
		"warnings", summary.Warnings,
		"elapsed", time.Since(startTime),
	)

	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Records read:            %d\n", summary.Records)
	fmt.Printf("Skipped (no identifier): %d\n", summary.MissingIdentifier)
	fmt.Printf("Skipped (unknown key):   %d\n", summary.UnknownKey)
	fmt.Printf("Products:                %d\n", summary.Products)
	fmt.Printf("Rows written:            %d\n", summary.Rows)
	fmt.Printf("Output:                  %s (%s)\n", cfg.Exporter.Output.Path, cfg.Exporter.Output.Format)

	if cfg.Exporter.Output.PreviewPath != "" {
		fmt.Printf("Preview:                 %s\n", cfg.Exporter.Output.PreviewPath)
	}

	fmt.Println("------------------------------------------------")

	return nil
}
