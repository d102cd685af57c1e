package schema

import (
	"github.com/docufill/docufill/internal/textutil"
	"github.com/docufill/docufill/match"
)

// DefaultAliasThreshold is the minimum fuzzy score (out of 100) for a key
// to resolve to a canonical field name.
const DefaultAliasThreshold = 80

// Resolver maps arbitrary key strings (AI output keys, OCR labels) to
// canonical field names: exact alias lookup first, fuzzy similarity against
// the canonical names as fallback. Resolution is a pure function over the
// schema's static tables.
type Resolver struct {
	schema    *Schema
	threshold int
	scorer    match.Scorer
}

// NewResolver builds a Resolver with the default threshold and scorer.
func NewResolver(s *Schema) *Resolver {
	return NewResolverWith(s, DefaultAliasThreshold, match.NewRatio())
}

// NewResolverWith builds a Resolver with an explicit threshold and scorer.
func NewResolverWith(s *Schema, threshold int, scorer match.Scorer) *Resolver {
	if threshold <= 0 {
		threshold = DefaultAliasThreshold
	}
	if scorer == nil {
		scorer = match.NewRatio()
	}
	return &Resolver{schema: s, threshold: threshold, scorer: scorer}
}

// Resolve returns the canonical field name for key, or key unchanged when
// no alias matches and no canonical name scores at or above the threshold.
// An unchanged return means "no confident mapping"; callers decide whether
// to drop the field or keep it as a non-canonical passthrough.
//
// Resolution is case- and whitespace-insensitive. Ties between canonical
// names break toward schema enumeration order.
func (r *Resolver) Resolve(key string) string {
	k := textutil.Normalize(key)
	if canonical, ok := r.schema.Aliases[k]; ok {
		return canonical
	}

	best := ""
	bestScore := -1
	for _, f := range r.schema.Fields {
		if score := r.scorer.Similarity(k, f.Name); score > bestScore {
			best = f.Name
			bestScore = score
		}
	}
	if bestScore >= r.threshold {
		return best
	}
	return key
}

// Resolved reports whether Resolve found a canonical name for key.
func (r *Resolver) Resolved(key string) bool {
	return r.schema.Has(r.Resolve(key))
}

// Schema returns the schema this resolver operates on.
func (r *Resolver) Schema() *Schema {
	return r.schema
}
