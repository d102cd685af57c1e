package doctext

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docufill/docufill/internal/textutil"
)

// PDFExtractor reads the text layer of digitally generated PDFs. Scanned
// image-only PDFs come back with empty pages and zero confidence; those go
// to a raster OCR engine instead.
type PDFExtractor struct {
	// MaxPages caps the pages read per document; 0 means 50.
	MaxPages int
}

// ExtractFile validates the PDF and returns one PageText per page. Pages
// with a text layer carry confidence 1 (the text is exact, not
// recognized); empty pages carry 0.
func (e *PDFExtractor) ExtractFile(path string) ([]PageText, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("doctext: invalid pdf %s: %w", path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("doctext: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	maxPages := e.MaxPages
	if maxPages <= 0 {
		maxPages = 50
	}
	total := reader.NumPage()
	if total > maxPages {
		slog.Debug("Truncating document", "path", path, "pages", total, "max", maxPages)
		total = maxPages
	}

	source := filepath.Base(path)
	pages := make([]PageText, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, PageText{SourceFile: source, Page: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Cannot read page text", "path", path, "page", i, "error", err)
			pages = append(pages, PageText{SourceFile: source, Page: i})
			continue
		}

		text = textutil.CollapseWhitespace(text)
		confidence := 0.0
		if text != "" {
			confidence = 1.0
		}
		pages = append(pages, PageText{
			Text:       text,
			Confidence: confidence,
			SourceFile: source,
			Page:       i,
		})
	}
	return pages, nil
}
