package extraction

import (
	"math"
	"sort"

	"github.com/docufill/docufill/schema"
)

// Record is AI output aligned to the canonical schema: each key is a
// canonical field name, and the overall confidence is the maximum of the
// per-field confidences.
type Record struct {
	Fields     map[string]FieldValue `json:"fields"`
	Confidence float64               `json:"confidence"`
	Method     string                `json:"extraction_method"`
}

// Values flattens the record into the field-to-string form the filler
// consumes. Fields with empty values are omitted.
func (r Record) Values() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for name, v := range r.Fields {
		if v.Value != "" {
			out[name] = v.Value
		}
	}
	return out
}

// Normalize resolves every raw field name through the alias resolver and
// keeps the fields that land in the canonical schema. Unresolvable keys
// are dropped; review happens on canonical fields only. When two raw keys
// resolve to the same canonical field, the higher-confidence value wins;
// ties break toward the lexically smaller raw key so the result is
// reproducible.
func Normalize(raw map[string]FieldValue, r *schema.Resolver) Record {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make(map[string]FieldValue)
	overall := 0.0

	for _, key := range keys {
		value := raw[key]
		canonical := r.Resolve(key)
		if !r.Schema().Has(canonical) {
			continue
		}
		if existing, ok := fields[canonical]; ok && existing.Confidence >= value.Confidence {
			continue
		}
		fields[canonical] = value
		if value.Confidence > overall {
			overall = value.Confidence
		}
	}

	return Record{
		Fields:     fields,
		Confidence: math.Round(overall*1000) / 1000,
		Method:     "ocr+ai",
	}
}
