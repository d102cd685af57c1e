// Package config loads docufill settings from a YAML file with
// environment overrides. Components receive explicit values from here;
// nothing reads ambient global state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/docufill/docufill/schema"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "docufill.yaml"

// Config is the process-wide configuration surface.
type Config struct {
	// AliasThreshold is the minimum fuzzy score for alias resolution.
	AliasThreshold int `yaml:"alias_threshold"`
	// SuggestThreshold is the minimum fuzzy score for label suggestion.
	SuggestThreshold int `yaml:"suggest_threshold"`

	// Schema selects a builtin schema by name ("admissions", "contact")
	// or, when it contains a path separator or .json suffix, a schema
	// file.
	Schema string `yaml:"schema"`

	Datastore struct {
		Dir     string `yaml:"dir"`
		Encrypt bool   `yaml:"encrypt"`
	} `yaml:"datastore"`

	AI struct {
		Model      string `yaml:"model"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"ai"`

	Fill struct {
		DelayMS int `yaml:"delay_ms"`
	} `yaml:"fill"`
}

// Default returns the baseline configuration.
func Default() *Config {
	c := &Config{
		AliasThreshold:   schema.DefaultAliasThreshold,
		SuggestThreshold: 70,
		Schema:           "admissions",
	}
	c.AI.Model = "gemini-1.5-flash-latest"
	c.AI.MaxRetries = 3
	c.Fill.DelayMS = 400
	return c
}

// Load reads configuration from path. An empty path tries DefaultFileName
// in the working directory; a missing file yields the defaults. Environment
// overrides apply after the file.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("config: %w", err)
	}

	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DOCUFILL_ENCRYPTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Datastore.Encrypt = n != 0
		}
	}
	if v := os.Getenv("DOCUFILL_PROFILE_DIR"); v != "" {
		c.Datastore.Dir = v
	}
	if v := os.Getenv("DOCUFILL_SCHEMA"); v != "" {
		c.Schema = v
	}
}

// Validate checks threshold ranges.
func (c *Config) Validate() error {
	if c.AliasThreshold < 1 || c.AliasThreshold > 100 {
		return fmt.Errorf("alias_threshold %d out of range [1,100]", c.AliasThreshold)
	}
	if c.SuggestThreshold < 1 || c.SuggestThreshold > 100 {
		return fmt.Errorf("suggest_threshold %d out of range [1,100]", c.SuggestThreshold)
	}
	if c.Schema == "" {
		return fmt.Errorf("schema must not be empty")
	}
	return nil
}

// LoadSchema resolves the configured schema, builtin or file-based.
func (c *Config) LoadSchema() (*schema.Schema, error) {
	if s, err := schema.Builtin(c.Schema); err == nil {
		return s, nil
	}
	return schema.Load(c.Schema)
}

// FillDelay returns the configured inter-field fill delay.
func (c *Config) FillDelay() time.Duration {
	return time.Duration(c.Fill.DelayMS) * time.Millisecond
}
