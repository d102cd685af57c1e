// Package schema defines the canonical field set all extraction and
// autofill logic is normalized against: named fields with fuzzy-matchable
// cue phrases, plus an alias table for exact-match key resolution.
//
// Schemas are configuration data, not code. Two builtin schemas ship with
// the package (a 24-field admissions set and a 15-field generic contact
// set); arbitrary schemas load from JSON files with the same shape.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/*.json
var builtins embed.FS

// Field is one canonical data slot: a stable name and the ordered cue
// phrases used to fuzzy-match form labels against it.
type Field struct {
	Name string   `json:"name"`
	Cues []string `json:"cues"`
}

// Schema is an immutable canonical field set with its alias table.
// Field order is significant: it is the deterministic tie-break order for
// fuzzy resolution.
type Schema struct {
	Name    string            `json:"name"`
	Fields  []Field           `json:"fields"`
	Aliases map[string]string `json:"aliases"`

	names map[string]bool
}

// Admissions returns the builtin 24-field admissions-form schema.
func Admissions() *Schema {
	return mustBuiltin("admissions")
}

// Contact returns the builtin 15-field generic contact-form schema.
func Contact() *Schema {
	return mustBuiltin("contact")
}

// Builtin loads a builtin schema by name ("admissions" or "contact").
func Builtin(name string) (*Schema, error) {
	data, err := builtins.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("schema: unknown builtin %q", name)
	}
	return Parse(data)
}

func mustBuiltin(name string) *Schema {
	s, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads a schema from a JSON file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates schema JSON.
func Parse(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s Schema
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("no fields defined")
	}

	s.names = make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("field with empty name")
		}
		if s.names[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		s.names[f.Name] = true
	}

	// Every alias must target a known canonical field.
	for alias, target := range s.Aliases {
		if alias != strings.ToLower(strings.TrimSpace(alias)) {
			return fmt.Errorf("alias %q is not lowercase and trimmed", alias)
		}
		if !s.names[target] {
			return fmt.Errorf("alias %q targets unknown field %q", alias, target)
		}
	}
	return nil
}

// Has reports whether name is a canonical field of this schema.
func (s *Schema) Has(name string) bool {
	return s.names[name]
}

// Names returns the canonical field names in enumeration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Cues returns the cue phrases for a canonical field, or nil if the field
// is not part of the schema.
func (s *Schema) Cues(name string) []string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Cues
		}
	}
	return nil
}
