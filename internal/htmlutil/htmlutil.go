// Package htmlutil provides goquery helpers for locating form controls and
// their labels in a page snapshot.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/docufill/docufill/internal/textutil"
)

// LoadHTML parses HTML from a reader into a goquery Document. Parsing is
// tolerant: malformed markup yields a best-effort tree, not an error.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses an HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// Controls returns every <input>, <textarea> and <select> element in the
// document, in document order.
func Controls(doc *goquery.Document) []*goquery.Selection {
	var controls []*goquery.Selection
	doc.Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		controls = append(controls, s)
	})
	return controls
}

// Attributes returns the element's full attribute bag verbatim.
func Attributes(s *goquery.Selection) map[string]string {
	if s.Length() == 0 {
		return nil
	}
	node := s.Get(0)
	attrs := make(map[string]string, len(node.Attr))
	for _, a := range node.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// LabelText resolves the visible label for a form control: the text of a
// <label for=id> if the element has an id and such a label exists, else the
// aria-label attribute, else the placeholder, else the empty string.
// Label text is whitespace-collapsed.
func LabelText(doc *goquery.Document, elem *goquery.Selection) string {
	if id, ok := elem.Attr("id"); ok && id != "" {
		label := doc.Find(`label[for="` + id + `"]`)
		if label.Length() > 0 {
			if text := textutil.CollapseWhitespace(label.First().Text()); text != "" {
				return text
			}
		}
	}
	if aria, ok := elem.Attr("aria-label"); ok && aria != "" {
		return aria
	}
	if ph, ok := elem.Attr("placeholder"); ok && ph != "" {
		return ph
	}
	return ""
}
