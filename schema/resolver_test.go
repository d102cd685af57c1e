package schema

import (
	"testing"

	"github.com/docufill/docufill/match"
)

func TestResolveKnownAliases(t *testing.T) {
	r := NewResolver(Admissions())
	for alias, want := range Admissions().Aliases {
		if got := r.Resolve(alias); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", alias, got, want)
		}
	}
}

func TestResolveCaseAndWhitespaceInsensitive(t *testing.T) {
	r := NewResolver(Admissions())
	if got := r.Resolve(" Mail_ID "); got != r.Resolve("mail_id") {
		t.Errorf("Resolve(\" Mail_ID \") = %q, differs from Resolve(\"mail_id\")", got)
	}
	if got := r.Resolve(" Mail_ID "); got != "email" {
		t.Errorf("Resolve(\" Mail_ID \") = %q, want email", got)
	}
}

func TestResolveFuzzyFallback(t *testing.T) {
	r := NewResolver(Admissions())
	// Not in the alias table; one edit away from the canonical name.
	if got := r.Resolve("emai"); got != "email" {
		t.Errorf("Resolve(\"emai\") = %q, want email", got)
	}
}

func TestResolvePassthrough(t *testing.T) {
	r := NewResolver(Admissions())
	for _, key := range []string{"xq9z_frobnicate", "serial_widget_count", "!!"} {
		if got := r.Resolve(key); got != key {
			t.Errorf("Resolve(%q) = %q, want identity passthrough", key, got)
		}
	}
}

func TestResolveExactCanonicalName(t *testing.T) {
	r := NewResolver(Admissions())
	if got := r.Resolve("postal_code"); got != "postal_code" {
		t.Errorf("Resolve(\"postal_code\") = %q, want postal_code", got)
	}
}

func TestResolveTieBreaksOnEnumerationOrder(t *testing.T) {
	s, err := Parse([]byte(`{
		"name": "t",
		"fields": [
			{"name": "alpha", "cues": ["alpha"]},
			{"name": "bravo", "cues": ["bravo"]}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	// Constant scorer: every candidate ties above the threshold, so the
	// first field in enumeration order must win.
	r := NewResolverWith(s, 80, match.Func(func(a, b string) int { return 90 }))
	if got := r.Resolve("anything"); got != "alpha" {
		t.Errorf("tie resolution = %q, want alpha", got)
	}
}

func TestResolveBelowThreshold(t *testing.T) {
	s := Admissions()
	r := NewResolverWith(s, 80, match.Func(func(a, b string) int { return 79 }))
	if got := r.Resolve("phon"); got != "phon" {
		t.Errorf("Resolve below threshold = %q, want passthrough", got)
	}
}

func TestResolved(t *testing.T) {
	r := NewResolver(Admissions())
	if !r.Resolved("contact_no") {
		t.Error("contact_no should resolve")
	}
	if r.Resolved("xq9z_frobnicate") {
		t.Error("garbage key should not resolve")
	}
}
