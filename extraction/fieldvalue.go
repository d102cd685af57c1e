// Package extraction handles the LLM boundary: decoding AI output of
// uneven shape, and normalizing its arbitrary field names onto the
// canonical schema before anything downstream sees them.
package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldValue is one extracted field. The wire shape varies: models return
// either a wrapped object {value, confidence, rationale} or a bare scalar.
// Both decode into this one normalized shape; the distinction never
// propagates past this package.
type FieldValue struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
}

type wrappedValue struct {
	Value      json.RawMessage `json:"value"`
	Confidence float64         `json:"confidence"`
	Rationale  string          `json:"rationale"`
}

// UnmarshalJSON accepts both the wrapped and the bare form. Bare scalars
// carry no confidence.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var w wrappedValue
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		value, err := scalarString(w.Value)
		if err != nil {
			return err
		}
		*v = FieldValue{Value: value, Confidence: w.Confidence, Rationale: w.Rationale}
		return nil
	}

	value, err := scalarString(data)
	if err != nil {
		return err
	}
	*v = FieldValue{Value: value}
	return nil
}

// scalarString renders a JSON scalar as a plain string.
func scalarString(data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n': // null
		return "", nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", fmt.Errorf("field value is neither scalar nor wrapped object")
		}
		return n.String(), nil
	}
}
