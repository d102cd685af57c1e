package schema

import "testing"

func TestBuiltinAdmissions(t *testing.T) {
	s := Admissions()
	if len(s.Fields) != 24 {
		t.Errorf("admissions fields = %d, want 24", len(s.Fields))
	}
	if !s.Has("full_name") || !s.Has("emergency_contact") {
		t.Error("expected full_name and emergency_contact in admissions schema")
	}
}

func TestBuiltinContact(t *testing.T) {
	s := Contact()
	if len(s.Fields) != 15 {
		t.Errorf("contact fields = %d, want 15", len(s.Fields))
	}
	if !s.Has("message") {
		t.Error("expected message in contact schema")
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("loan"); err == nil {
		t.Error("expected error for unknown builtin")
	}
}

func TestParseValidatesAliasTargets(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t",
		"fields": [{"name": "email", "cues": ["email"]}],
		"aliases": {"mail": "phone"}
	}`))
	if err == nil {
		t.Error("expected error for alias targeting unknown field")
	}
}

func TestParseValidatesDuplicates(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t",
		"fields": [
			{"name": "email", "cues": ["email"]},
			{"name": "email", "cues": ["mail"]}
		]
	}`))
	if err == nil {
		t.Error("expected error for duplicate field")
	}
}

func TestParseValidatesAliasCase(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t",
		"fields": [{"name": "email", "cues": ["email"]}],
		"aliases": {"Mail ": "email"}
	}`))
	if err == nil {
		t.Error("expected error for non-normalized alias key")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "t", "fields": []}`)); err == nil {
		t.Error("expected error for empty field set")
	}
}

func TestNamesOrder(t *testing.T) {
	s := Admissions()
	names := s.Names()
	if names[0] != "full_name" {
		t.Errorf("first canonical name = %q, want full_name", names[0])
	}
	if len(names) != len(s.Fields) {
		t.Errorf("Names() length = %d, want %d", len(names), len(s.Fields))
	}
}

func TestCues(t *testing.T) {
	s := Admissions()
	cues := s.Cues("phone")
	if len(cues) == 0 {
		t.Fatal("expected cues for phone")
	}
	if s.Cues("no_such_field") != nil {
		t.Error("expected nil cues for unknown field")
	}
}
