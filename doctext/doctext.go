// Package doctext defines the boundary with the document recognition
// pipeline: per-page recognized text with a confidence score. A PDF
// implementation is included for digitally generated documents; raster OCR
// engines plug in behind the same interface.
package doctext

import "strings"

// PageText is one page of recognized text.
type PageText struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	SourceFile string  `json:"source_file"`
	Page       int     `json:"page"`
}

// Extractor produces page text from a document file.
type Extractor interface {
	ExtractFile(path string) ([]PageText, error)
}

// Join concatenates page texts in page order with blank lines between
// pages, for feeding a whole document to the LLM extractor.
func Join(pages []PageText) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n\n")
}
