package classify

import "github.com/DeafMist/news-tagger/internal/taxonomy"

// CategoryHits lists the keywords of one category found in a text.
type CategoryHits struct {
	Category string
	Keywords []string
}

// Hits holds one entry per category, in taxonomy order, including categories
// without matches.
type Hits []CategoryHits

// NonEmpty returns only categories with at least one matched keyword.
func (h Hits) NonEmpty() map[string][]string {
	out := make(map[string][]string)
	for _, c := range h {
		if len(c.Keywords) > 0 {
			out[c.Category] = append([]string(nil), c.Keywords...)
		}
	}
	return out
}

// Score returns the number of hits for category.
func (h Hits) Score(category string) int {
	for _, c := range h {
		if c.Category == category {
			return len(c.Keywords)
		}
	}
	return 0
}

type compiledCategory struct {
	name     string
	keywords []keyword
}

// Collector matches the broad keyword lists of a taxonomy against normalized
// text. It is immutable and safe for concurrent use.
type Collector struct {
	categories []compiledCategory
}

// NewCollector precompiles the broad keywords of t. Deny-listed generic terms
// of the generic category are left out entirely.
func NewCollector(t *taxonomy.Taxonomy) *Collector {
	c := &Collector{}
	if t == nil {
		return c
	}
	for _, cat := range t.Broad.Categories() {
		cc := compiledCategory{name: cat.Name}
		for _, k := range compileList(cat.Keywords) {
			if t.IsGeneric(cat.Name, k.text) {
				continue
			}
			cc.keywords = append(cc.keywords, k)
		}
		c.categories = append(c.categories, cc)
	}
	return c
}

// Collect returns the matched keywords per category. normalized must already
// be the output of normalize.Normalize.
func (c *Collector) Collect(normalized string) Hits {
	hits := make(Hits, 0, len(c.categories))
	for _, cat := range c.categories {
		entry := CategoryHits{Category: cat.name}
		for _, k := range cat.keywords {
			if k.in(normalized) {
				entry.Keywords = append(entry.Keywords, k.text)
			}
		}
		hits = append(hits, entry)
	}
	return hits
}
