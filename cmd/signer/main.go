// Package main provides the signer command-line tool for verifying preview digests.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"catexport/internal/validator"
	"catexport/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "", "Path to a preview file (e.g., preview.md)")
	sign := flag.Bool("sign", false, "Re-sign the file instead of only verifying it")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: signer -input <path> [-sign]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	contentBytes, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	content := string(contentBytes)
	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, len(content))

	v := validator.NewPreviewValidator()

	if *sign {
		meta, _ := metadata.Extract(content)
		if meta == nil {
			// Unsigned file: count what the table shows
			stats := v.ValidatePreview(content).Stats
			meta = &metadata.Metadata{Rows: stats.TotalRows, Products: stats.Products}
		}

		fmt.Println("✍️  Signing file...")

		if err := os.WriteFile(*inputPath, []byte(metadata.Sign(content, meta)), 0644); err != nil {
			log.Fatalf("Error writing file: %v\n", err)
		}

		fmt.Printf("✅ Signed and saved to: %s\n", *inputPath)

		return
	}

	integrity := v.ValidateIntegrity(content)
	if !integrity.IsValid {
		integrity.PrintErrors()

		if _, err := metadata.Verify(content); errors.Is(err, metadata.ErrNoMetadataBlock) {
			fmt.Println("💡 Run with -sign to add a metadata block")
		}

		os.Exit(1)
	}

	meta, _ := metadata.Extract(content)
	fmt.Printf("✅ Digest valid: %d rows, %d products\n", meta.Rows, meta.Products)

	result := v.ValidatePreview(content)
	fmt.Println(result.String())
	result.PrintErrors()
	result.PrintWarnings()

	if !result.IsValid {
		os.Exit(1)
	}
}
