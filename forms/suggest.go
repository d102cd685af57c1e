package forms

import (
	"github.com/docufill/docufill/internal/textutil"
	"github.com/docufill/docufill/match"
	"github.com/docufill/docufill/schema"
)

// DefaultSuggestThreshold is the minimum fuzzy score (out of 100) for an
// input to be accepted as the match for a canonical field. It is looser
// than the alias resolver's bar because form labels are noisier than
// programmatic keys.
const DefaultSuggestThreshold = 70

// candidateAttrs are the attributes concatenated as a fallback label, and
// the order they are tried in.
var candidateAttrs = []string{"name", "id", "aria-label", "placeholder"}

// Suggester scores extracted inputs against each canonical field's cue
// phrases and emits a selector mapping for the confident matches.
//
// Matching is a greedy per-field argmax, not a global assignment: one input
// may be claimed by more than one canonical field. That trades optimal
// assignment for simplicity; mismatches are corrected by human review of
// the mapping before use.
type Suggester struct {
	schema    *schema.Schema
	threshold int
	scorer    match.Scorer
}

// NewSuggester builds a Suggester with the default threshold and scorer.
func NewSuggester(s *schema.Schema) *Suggester {
	return NewSuggesterWith(s, DefaultSuggestThreshold, match.NewRatio())
}

// NewSuggesterWith builds a Suggester with an explicit threshold and scorer.
func NewSuggesterWith(s *schema.Schema, threshold int, scorer match.Scorer) *Suggester {
	if threshold <= 0 {
		threshold = DefaultSuggestThreshold
	}
	if scorer == nil {
		scorer = match.NewRatio()
	}
	return &Suggester{schema: s, threshold: threshold, scorer: scorer}
}

// Suggest returns a mapping from canonical field names to selectors for
// every field with a confident match. Fields without one are omitted; that
// is "no confident match", not an error. An empty input slice yields an
// empty mapping.
func (sg *Suggester) Suggest(inputs []Input) Mapping {
	mapping := make(Mapping)

	for _, field := range sg.schema.Fields {
		var best *Input
		bestScore := 0

		for i := range inputs {
			score := sg.scoreInput(inputs[i], field.Cues)
			// Strictly greater: the first-seen input wins ties.
			if score > bestScore {
				best = &inputs[i]
				bestScore = score
			}
		}

		if best == nil || bestScore < sg.threshold {
			continue
		}
		if selector, ok := selectorFor(*best); ok {
			mapping[field.Name] = selector
		}
	}
	return mapping
}

// scoreInput is the maximum similarity between the input's label string and
// any of the field's cue phrases. The label string is the resolved label if
// non-empty, else the concatenated name/id/aria-label/placeholder
// attributes. Empty label strings always score 0.
func (sg *Suggester) scoreInput(in Input, cues []string) int {
	label := in.Label
	if label == "" {
		parts := make([]string, 0, len(candidateAttrs))
		for _, a := range candidateAttrs {
			parts = append(parts, in.Attrs[a])
		}
		label = textutil.JoinNonEmpty(parts...)
	}
	label = textutil.Normalize(label)
	if label == "" {
		return 0
	}

	best := 0
	for _, cue := range cues {
		if score := sg.scorer.Similarity(label, cue); score > best {
			best = score
		}
	}
	return best
}

// SuggestHTML extracts inputs from a page snapshot and suggests a mapping
// in one step.
func (sg *Suggester) SuggestHTML(html string) (Mapping, error) {
	inputs, err := Extract(html)
	if err != nil {
		return nil, err
	}
	return sg.Suggest(inputs), nil
}
