// Package match abstracts approximate string similarity behind a small
// interface so the metric can be swapped without touching the resolver or
// suggester logic.
package match

import (
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Scorer computes approximate string similarity on a 0-100 scale, tolerant
// of minor spelling and formatting differences.
type Scorer interface {
	Similarity(a, b string) int
}

// Func adapts a plain function to the Scorer interface.
type Func func(a, b string) int

// Similarity calls f.
func (f Func) Similarity(a, b string) int { return f(a, b) }

// Ratio is the default Scorer: a normalized edit-distance ratio.
type Ratio struct {
	metric *metrics.Levenshtein
}

// NewRatio returns a case-insensitive Ratio scorer.
func NewRatio() *Ratio {
	m := metrics.NewLevenshtein()
	m.CaseSensitive = false
	return &Ratio{metric: m}
}

// Similarity returns the similarity of a and b in [0, 100].
// Two empty strings are considered identical.
func (r *Ratio) Similarity(a, b string) int {
	s := strutil.Similarity(a, b, r.metric)
	return int(math.Round(s * 100))
}
