// Package forms turns a page snapshot into input descriptors and suggests
// a canonical-field-to-selector mapping from them.
package forms

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/docufill/docufill/internal/htmlutil"
)

// Input describes one HTML form control: its tag, the full attribute bag,
// and the resolved visible label. Inputs are ephemeral, rebuilt from a page
// snapshot on every inspection and never persisted.
type Input struct {
	Tag   string            `json:"tag"`
	Attrs map[string]string `json:"attrs"`
	Label string            `json:"label"`
}

// Attr returns the named attribute or the empty string.
func (in Input) Attr(key string) string {
	return in.Attrs[key]
}

// Extract parses a page snapshot and returns descriptors for every input,
// textarea and select element in document order. Malformed markup degrades
// gracefully: whatever the tolerant parser recovers is extracted.
func Extract(html string) ([]Input, error) {
	doc, err := htmlutil.LoadHTMLString(html)
	if err != nil {
		return nil, fmt.Errorf("forms: parse: %w", err)
	}
	return extractDoc(doc), nil
}

func extractDoc(doc *goquery.Document) []Input {
	controls := htmlutil.Controls(doc)
	inputs := make([]Input, 0, len(controls))
	for _, c := range controls {
		inputs = append(inputs, Input{
			Tag:   goquery.NodeName(c),
			Attrs: htmlutil.Attributes(c),
			Label: htmlutil.LabelText(doc, c),
		})
	}
	return inputs
}
