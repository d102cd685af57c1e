package forms

import (
	"fmt"
	"strings"
)

// Mapping maps canonical field names to selector expressions. It is the
// central artifact: produced by suggestion, edited by a human, persisted as
// a domain profile.
type Mapping map[string]string

// SelectorKind distinguishes CSS selectors from XPath expressions.
type SelectorKind int

const (
	SelectorCSS SelectorKind = iota
	SelectorXPath
)

func (k SelectorKind) String() string {
	if k == SelectorXPath {
		return "xpath"
	}
	return "css"
}

// KindOf classifies a selector expression: anything starting with "/" or
// "(" is XPath, the rest is CSS.
func KindOf(selector string) SelectorKind {
	sel := strings.TrimSpace(selector)
	if strings.HasPrefix(sel, "/") || strings.HasPrefix(sel, "(") {
		return SelectorXPath
	}
	return SelectorCSS
}

// selectorFor synthesizes a CSS selector for an input, in strict
// attribute-presence priority order: id, name, aria-label, placeholder.
// ok is false when none of the four attributes is present; the caller must
// then drop the field even if its label matched.
func selectorFor(in Input) (selector string, ok bool) {
	if id, present := in.Attrs["id"]; present {
		return "#" + id, true
	}
	if name, present := in.Attrs["name"]; present {
		return fmt.Sprintf("[name='%s']", name), true
	}
	if aria, present := in.Attrs["aria-label"]; present {
		return fmt.Sprintf("[aria-label='%s']", aria), true
	}
	if ph, present := in.Attrs["placeholder"]; present {
		return fmt.Sprintf("[placeholder='%s']", ph), true
	}
	return "", false
}
