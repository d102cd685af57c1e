package extraction

import (
	"encoding/json"
	"testing"

	"github.com/docufill/docufill/schema"
)

func TestFieldValueWrapped(t *testing.T) {
	var v FieldValue
	err := json.Unmarshal([]byte(`{"value": "9876543210", "confidence": 0.9, "rationale": "near phone label"}`), &v)
	if err != nil {
		t.Fatal(err)
	}
	if v.Value != "9876543210" || v.Confidence != 0.9 || v.Rationale != "near phone label" {
		t.Errorf("unexpected wrapped decode: %+v", v)
	}
}

func TestFieldValueBare(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"Priya Sharma"`, "Priya Sharma"},
		{`12500`, "12500"},
		{`12.5`, "12.5"},
		{`true`, "true"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var v FieldValue
		if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if v.Value != tt.want {
			t.Errorf("bare %s decoded to %q, want %q", tt.raw, v.Value, tt.want)
		}
		if v.Confidence != 0 {
			t.Errorf("bare %s should carry zero confidence", tt.raw)
		}
	}
}

func TestFieldValueWrappedNumericValue(t *testing.T) {
	var v FieldValue
	if err := json.Unmarshal([]byte(`{"value": 12500, "confidence": 0.7}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Value != "12500" || v.Confidence != 0.7 {
		t.Errorf("unexpected decode: %+v", v)
	}
}

func TestNormalizeResolvesAliases(t *testing.T) {
	r := schema.NewResolver(schema.Admissions())
	raw := map[string]FieldValue{
		"contact_no": {Value: "9876543210", Confidence: 0.9, Rationale: "near phone label"},
		"mail_id":    {Value: "a@b.example", Confidence: 0.8},
	}

	rec := Normalize(raw, r)
	if got := rec.Fields["phone"]; got.Value != "9876543210" || got.Confidence != 0.9 {
		t.Errorf("phone = %+v, want value 9876543210 conf 0.9", got)
	}
	if got := rec.Fields["email"]; got.Value != "a@b.example" {
		t.Errorf("email = %+v", got)
	}
	if rec.Confidence != 0.9 {
		t.Errorf("overall confidence = %v, want 0.9", rec.Confidence)
	}
	if rec.Method != "ocr+ai" {
		t.Errorf("method = %q", rec.Method)
	}
}

func TestNormalizeDropsUnresolvableKeys(t *testing.T) {
	r := schema.NewResolver(schema.Admissions())
	rec := Normalize(map[string]FieldValue{
		"xq9z_frobnicate": {Value: "noise", Confidence: 0.99},
	}, r)
	if len(rec.Fields) != 0 {
		t.Errorf("unresolvable keys should be dropped, got %v", rec.Fields)
	}
}

func TestNormalizeCollisionKeepsHigherConfidence(t *testing.T) {
	r := schema.NewResolver(schema.Admissions())
	rec := Normalize(map[string]FieldValue{
		"mobile":     {Value: "111", Confidence: 0.4},
		"contact_no": {Value: "222", Confidence: 0.9},
	}, r)
	if got := rec.Fields["phone"]; got.Value != "222" {
		t.Errorf("phone = %+v, want the higher-confidence value", got)
	}
}

func TestRecordValues(t *testing.T) {
	rec := Record{Fields: map[string]FieldValue{
		"email": {Value: "a@b.example", Confidence: 0.8},
		"phone": {Value: "", Confidence: 0},
	}}
	values := rec.Values()
	if values["email"] != "a@b.example" {
		t.Errorf("values[email] = %q", values["email"])
	}
	if _, ok := values["phone"]; ok {
		t.Error("empty values should be omitted")
	}
}

func TestParseResponse(t *testing.T) {
	body := []byte(`{"candidates": [{"content": {"parts": [{"text": "{\"full_name\": {\"value\": \"Priya\", \"confidence\": 0.95, \"rationale\": \"header\"}}"}]}}]}`)
	fields, err := parseResponse(body)
	if err != nil {
		t.Fatal(err)
	}
	if fields["full_name"].Value != "Priya" {
		t.Errorf("full_name = %+v", fields["full_name"])
	}
}

func TestParseResponseFenced(t *testing.T) {
	body := []byte(`{"candidates": [{"content": {"parts": [{"text": "` + "```json\\n{\\\"email\\\": \\\"a@b.example\\\"}\\n```" + `"}]}}]}`)
	fields, err := parseResponse(body)
	if err != nil {
		t.Fatal(err)
	}
	if fields["email"].Value != "a@b.example" {
		t.Errorf("email = %+v", fields["email"])
	}
}

func TestParseResponseEmpty(t *testing.T) {
	if _, err := parseResponse([]byte(`{"candidates": []}`)); err == nil {
		t.Error("expected error for empty candidates")
	}
}
