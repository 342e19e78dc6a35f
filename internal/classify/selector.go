package classify

import (
	"fmt"

	"github.com/DeafMist/news-tagger/internal/taxonomy"
)

// Defaults for the selection thresholds.
const (
	DefaultMinMatches  = 2
	DefaultAllowStrong = true
)

// Reasons attached to a Decision.
const (
	ReasonNoHits       = "no_hits"
	ReasonFallback     = "fallback:General"
	ReasonScorePrefix  = "score>="
	ReasonStrongPrefix = "strong_keyword:"
)

// Decision is the outcome of category selection.
type Decision struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
	Score    int    `json:"score"`
}

// Selector turns per-category hits into a single category.
type Selector struct {
	fallback string
	strong   map[string][]keyword
}

// NewSelector builds a selector. strong may be nil, in which case single-hit
// acceptance never triggers.
func NewSelector(fallback string, strong *taxonomy.Table) *Selector {
	if fallback == "" {
		fallback = taxonomy.DefaultFallback
	}
	s := &Selector{fallback: fallback, strong: make(map[string][]keyword)}
	for _, cat := range strong.Categories() {
		s.strong[cat.Name] = compileList(cat.Keywords)
	}
	return s
}

// Fallback returns the category used when nothing qualifies.
func (s *Selector) Fallback() string { return s.fallback }

// Select picks the category with the most hits; ties go to the earliest
// category. The winner is accepted when it reaches minMatches, or, with
// allowStrong, when one of its strong keywords is present. Otherwise the
// fallback category is returned. Score is always the best raw hit count.
func (s *Selector) Select(normalized string, hits Hits, minMatches int, allowStrong bool) Decision {
	if len(hits) == 0 {
		return Decision{Category: s.fallback, Reason: ReasonNoHits}
	}

	best := hits[0].Category
	bestScore := len(hits[0].Keywords)
	for _, h := range hits[1:] {
		if len(h.Keywords) > bestScore {
			best = h.Category
			bestScore = len(h.Keywords)
		}
	}

	if bestScore >= minMatches {
		return Decision{
			Category: best,
			Reason:   fmt.Sprintf("%s%d (%d)", ReasonScorePrefix, minMatches, bestScore),
			Score:    bestScore,
		}
	}

	if allowStrong {
		if kw, ok := s.strongHit(best, normalized); ok {
			return Decision{Category: best, Reason: ReasonStrongPrefix + kw, Score: bestScore}
		}
	}

	return Decision{Category: s.fallback, Reason: ReasonFallback, Score: bestScore}
}

// strongHit returns the first strong keyword of category present in normalized.
// Generic terms are not filtered here.
func (s *Selector) strongHit(category, normalized string) (string, bool) {
	for _, k := range s.strong[category] {
		if k.in(normalized) {
			return k.text, true
		}
	}
	return "", false
}
