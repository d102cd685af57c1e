package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.AliasThreshold != 80 || c.SuggestThreshold != 70 {
		t.Errorf("default thresholds = %d/%d, want 80/70", c.AliasThreshold, c.SuggestThreshold)
	}
	if c.Datastore.Encrypt {
		t.Error("encryption should default off")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Schema != "admissions" {
		t.Errorf("schema = %q, want admissions", c.Schema)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docufill.yaml")
	content := []byte(`
suggest_threshold: 60
schema: contact
datastore:
    dir: /tmp/profiles
    encrypt: true
ai:
    model: gemini-1.5-pro
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.SuggestThreshold != 60 || c.Schema != "contact" || !c.Datastore.Encrypt {
		t.Errorf("unexpected config: %+v", c)
	}
	if c.AliasThreshold != 80 {
		t.Errorf("unset keys should keep defaults, alias_threshold = %d", c.AliasThreshold)
	}
	if c.AI.Model != "gemini-1.5-pro" {
		t.Errorf("ai.model = %q", c.AI.Model)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCUFILL_ENCRYPTION", "1")
	t.Setenv("DOCUFILL_PROFILE_DIR", "/tmp/p")
	t.Setenv("DOCUFILL_SCHEMA", "contact")

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Datastore.Encrypt || c.Datastore.Dir != "/tmp/p" || c.Schema != "contact" {
		t.Errorf("env overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.SuggestThreshold = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for out-of-range threshold")
	}
	c = Default()
	c.AliasThreshold = 101
	if err := c.Validate(); err == nil {
		t.Error("expected error for threshold above 100")
	}
}

func TestLoadSchemaBuiltin(t *testing.T) {
	c := Default()
	c.Schema = "contact"
	s, err := c.LoadSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Fields) != 15 {
		t.Errorf("contact schema fields = %d, want 15", len(s.Fields))
	}
}
