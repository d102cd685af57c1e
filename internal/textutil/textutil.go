// Package textutil provides text normalization helpers shared by the
// extractor, suggester and alias resolver.
package textutil

import (
	"regexp"
	"strings"
)

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// CollapseWhitespace replaces newlines and runs of whitespace with a single
// space and trims the ends.
func CollapseWhitespace(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
}

// Normalize lowercases and trims text for fuzzy comparison.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// JoinNonEmpty joins the non-empty parts with a single space, preserving
// their order.
func JoinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
