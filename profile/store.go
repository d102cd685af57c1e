// Package profile persists domain-keyed field mappings: one JSON record
// per domain under a profile directory, optionally encrypted at rest.
package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docufill/docufill/forms"
)

// Store reads and writes profiles. Saves replace the destination file
// atomically, so a concurrent reader never observes a half-written
// profile. Concurrent saves for the same domain are last-writer-wins.
type Store struct {
	dir string
	box *box // nil when encryption is disabled
}

// CorruptError reports a profile that exists but cannot be read back:
// corrupt content or a failed decryption. It is distinct from a load miss,
// which is not an error at all.
type CorruptError struct {
	Domain string
	Err    error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("profile for %q is corrupt: %v", e.Domain, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// NewStore creates a Store rooted at dir, creating the directory if
// needed. With encrypt set, profile content is sealed with a symmetric key
// supplied via the environment (see KeyEnv).
func NewStore(dir string, encrypt bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profile: create dir: %w", err)
	}
	s := &Store{dir: dir}
	if encrypt {
		b, err := openBox()
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		s.box = b
	}
	return s, nil
}

// Save writes the mapping as the profile for domain, overwriting any
// existing profile wholesale. The write goes to a temp file in the same
// directory and is renamed into place.
func (s *Store) Save(domain string, mapping forms.Mapping) error {
	data, err := json.MarshalIndent(mapping, "", "    ")
	if err != nil {
		return fmt.Errorf("profile: marshal: %w", err)
	}
	if s.box != nil {
		data = s.box.seal(data)
	}

	tmp, err := os.CreateTemp(s.dir, ".profile-*")
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("profile: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("profile: close: %w", err)
	}

	dest := s.path(domain)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("profile: replace: %w", err)
	}
	slog.Debug("Saved profile", "domain", domain, "fields", len(mapping), "path", dest)
	return nil
}

// Load returns the saved mapping for domain. A missing profile is
// (nil, false, nil), never an error. A profile that exists but cannot be
// decoded returns a *CorruptError; it is never silently reported as
// absent, because that would be indistinguishable from "no profile saved".
func (s *Store) Load(domain string) (forms.Mapping, bool, error) {
	data, err := os.ReadFile(s.path(domain))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("profile: %w", err)
	}

	if s.box != nil {
		data, err = s.box.open(data)
		if err != nil {
			return nil, false, &CorruptError{Domain: domain, Err: err}
		}
	}

	var mapping forms.Mapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, false, &CorruptError{Domain: domain, Err: err}
	}
	return mapping, true, nil
}

// List returns the stored profile names in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	var domains []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		domains = append(domains, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(domains)
	return domains, nil
}

// path derives the profile file name deterministically from the domain.
func (s *Store) path(domain string) string {
	return filepath.Join(s.dir, sanitize(domain)+".json")
}

func sanitize(domain string) string {
	var b strings.Builder
	b.Grow(len(domain))
	for _, r := range domain {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
