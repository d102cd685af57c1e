package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docufill/docufill/doctext"
	"github.com/docufill/docufill/extraction"
)

func (c *CLI) newExtractCommand() *cobra.Command {
	var maxPages int
	var timeout int

	cmd := &cobra.Command{
		Use:   "extract <document>",
		Short: "Extract canonical fields from a document via the Gemini API",
		Args:  cobra.ExactArgs(1),
		Example: `  # Extract from a digitally generated PDF
  GEMINI_API_KEY=... docufill extract application.pdf

  # Extract from already-recognized text
  GEMINI_API_KEY=... docufill extract ocr-output.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			text, err := documentText(path, maxPages)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text recovered from %s (scanned image? run OCR first)", path)
			}
			slog.Debug("Document text loaded", "path", path, "bytes", len(text))

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			s, err := cfg.LoadSchema()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}

			client := extraction.NewGeminiClient(os.Getenv("GEMINI_API_KEY"), cfg.AI.Model, cfg.AI.MaxRetries)
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
			defer cancel()

			start := time.Now()
			raw, err := client.Extract(ctx, text, s)
			if err != nil {
				return err
			}
			slog.Debug("Extraction complete", "fields", len(raw), "duration", time.Since(start))

			record := extraction.Normalize(raw, eng.Resolver())
			output, _ := json.MarshalIndent(record, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPages, "max-pages", 50, "Max PDF pages to read")
	cmd.Flags().IntVar(&timeout, "timeout", 60, "API timeout in seconds")
	return cmd
}

func documentText(path string, maxPages int) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		e := &doctext.PDFExtractor{MaxPages: maxPages}
		pages, err := e.ExtractFile(path)
		if err != nil {
			return "", err
		}
		return doctext.Join(pages), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}
