// Package main provides the preview formatter command-line tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"catexport/internal/formatter"
	"catexport/internal/sink"
)

func main() {
	// Define command-line flags
	inputPath := flag.String("input", "", "Exported CSV to preview, or an existing preview (.md) to re-align")
	outputPath := flag.String("output", "", "Preview path (default: input with .md extension)")
	rows := flag.Int("rows", 50, "Number of rows to include in a new preview")
	write := flag.Bool("write", false, "Re-align mode: write changes to the file (default: dry-run)")

	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: formatter -input <output.csv|preview.md> [-output preview.md] [-rows N] [-write]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	switch strings.ToLower(filepath.Ext(*inputPath)) {
	case ".csv":
		target := *outputPath
		if target == "" {
			target = strings.TrimSuffix(*inputPath, filepath.Ext(*inputPath)) + ".md"
		}

		if err := renderCSV(*inputPath, target, *rows); err != nil {
			log.Fatalf("❌ Failed to render preview: %v\n", err)
		}

		fmt.Printf("✅ Preview written to: %s\n", target)

	case ".md":
		changed, err := realign(*inputPath, *write)
		if err != nil {
			log.Fatalf("❌ Failed to format %s: %v\n", *inputPath, err)
		}

		switch {
		case !changed:
			fmt.Printf("👌 Already formatted: %s\n", *inputPath)
		case *write:
			fmt.Printf("✅ Formatted & Signed: %s\n", *inputPath)
		default:
			fmt.Printf("📝 Would format & sign: %s\n", *inputPath)
		}

	default:
		log.Fatalf("❌ Unsupported input type: %s\n", *inputPath)
	}
}

func renderCSV(input, output string, limit int) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("📂 Reading: %s\n", input)

	all, err := sink.ReadCSV(f)
	if err != nil {
		return err
	}

	products := 0

	for _, r := range all {
		if r.SKU != "" {
			products++
		}
	}

	shown := all
	if limit >= 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	content := sink.RenderPreview(shown, len(all), products, filepath.Base(input))

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	return os.WriteFile(output, []byte(content), 0644)
}

func realign(path string, write bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	formatted, err := formatter.FormatMarkdown(string(content))
	if err != nil {
		return false, err
	}

	if formatted == string(content) {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return false, err
		}
	}

	return true, nil
}
