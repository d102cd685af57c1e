// Package docufill maps scanned-document data onto web forms: it
// normalizes AI-extracted field names against a canonical schema, suggests
// field-to-selector mappings for a page by fuzzy label matching, and
// persists learned mappings per domain so a form is mapped once and reused.
//
//	eng, _ := docufill.New(docufill.Options{ProfileDir: dir})
//	mapping, _ := eng.ResolveMapping("example.com", pageHTML)
//	for field, selector := range mapping {
//	    fmt.Println(field, "→", selector) // "email → #email"
//	}
package docufill

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docufill/docufill/forms"
	"github.com/docufill/docufill/match"
	"github.com/docufill/docufill/profile"
	"github.com/docufill/docufill/schema"
)

// Options configures an Engine. The zero value gives the builtin
// admissions schema, default thresholds, a plaintext profile store under
// the user home, and the default similarity scorer.
type Options struct {
	Schema           *schema.Schema
	ProfileDir       string
	EncryptProfiles  bool
	AliasThreshold   int
	SuggestThreshold int
	Scorer           match.Scorer
}

// Engine bundles the resolver, suggester and profile store behind the
// mapping-resolution façade. It is stateless per call; concurrent use for
// different domains is safe.
type Engine struct {
	schema    *schema.Schema
	resolver  *schema.Resolver
	suggester *forms.Suggester
	store     *profile.Store
}

// DefaultProfileDir is the profile directory used when Options.ProfileDir
// is empty.
func DefaultProfileDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".docufill", "profiles")
}

// New builds an Engine from the given options.
func New(opts Options) (*Engine, error) {
	s := opts.Schema
	if s == nil {
		s = schema.Admissions()
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = match.NewRatio()
	}
	dir := opts.ProfileDir
	if dir == "" {
		dir = DefaultProfileDir()
	}

	store, err := profile.NewStore(dir, opts.EncryptProfiles)
	if err != nil {
		return nil, fmt.Errorf("docufill: %w", err)
	}

	return &Engine{
		schema:    s,
		resolver:  schema.NewResolverWith(s, opts.AliasThreshold, scorer),
		suggester: forms.NewSuggesterWith(s, opts.SuggestThreshold, scorer),
		store:     store,
	}, nil
}

// ResolveMapping returns the usable mapping for a domain: the saved
// profile verbatim when one exists (even if the page has changed since it
// was captured), else a fresh suggestion over pageHTML. A fresh suggestion
// is not persisted; call SaveMapping for that.
func (e *Engine) ResolveMapping(domain, pageHTML string) (forms.Mapping, error) {
	saved, ok, err := e.store.Load(domain)
	if err != nil {
		return nil, fmt.Errorf("docufill: %w", err)
	}
	if ok {
		return saved, nil
	}
	return e.SuggestMapping(pageHTML)
}

// SuggestMapping runs the extractor and suggester over a page snapshot.
func (e *Engine) SuggestMapping(pageHTML string) (forms.Mapping, error) {
	mapping, err := e.suggester.SuggestHTML(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("docufill: %w", err)
	}
	return mapping, nil
}

// SaveMapping persists a mapping as the profile for domain, replacing any
// existing profile.
func (e *Engine) SaveMapping(domain string, mapping forms.Mapping) error {
	return e.store.Save(domain, mapping)
}

// LoadMapping returns the saved profile for domain, with ok reporting
// whether one exists.
func (e *Engine) LoadMapping(domain string) (forms.Mapping, bool, error) {
	return e.store.Load(domain)
}

// ResolveKey maps an arbitrary field name to its canonical schema name, or
// returns it unchanged when no confident mapping exists.
func (e *Engine) ResolveKey(key string) string {
	return e.resolver.Resolve(key)
}

// Resolver exposes the engine's alias resolver for boundary normalization.
func (e *Engine) Resolver() *schema.Resolver {
	return e.resolver
}

// Schema returns the canonical schema the engine was built with.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// Profiles exposes the engine's profile store.
func (e *Engine) Profiles() *profile.Store {
	return e.store
}
