package taxonomy

import (
	"strings"

	"github.com/DeafMist/news-tagger/internal/normalize"
)

// DefaultFallback is the category assigned when nothing else qualifies.
const DefaultFallback = "General"

// Category is a named keyword list.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Table is an ordered set of categories. Iteration order is the order the
// categories were given in and decides ties during selection.
type Table struct {
	categories []Category
	index      map[string]int
}

// NewTable builds a table. Keyword lists are trimmed and de-duplicated keeping
// the first occurrence; empty keywords are dropped. A repeated category name
// merges into the first entry.
func NewTable(categories ...Category) *Table {
	t := &Table{index: make(map[string]int, len(categories))}
	for _, c := range categories {
		pos, ok := t.index[c.Name]
		if !ok {
			pos = len(t.categories)
			t.index[c.Name] = pos
			t.categories = append(t.categories, Category{Name: c.Name})
		}
		t.categories[pos].Keywords = appendUnique(t.categories[pos].Keywords, c.Keywords)
	}
	return t
}

func appendUnique(dst, src []string) []string {
	for _, kw := range src {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		dup := false
		for _, have := range dst {
			if have == kw {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, kw)
		}
	}
	return dst
}

// Categories returns the categories in table order.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Names returns the category names in table order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Keywords returns the keyword list for name, or nil when the category is unknown.
func (t *Table) Keywords(name string) []string {
	if t == nil {
		return nil
	}
	pos, ok := t.index[name]
	if !ok {
		return nil
	}
	return append([]string(nil), t.categories[pos].Keywords...)
}

// Len reports the number of categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.categories)
}

// Taxonomy bundles everything the classifier needs.
type Taxonomy struct {
	// Broad keyword lists; two or more hits are normally required.
	Broad *Table
	// Strong keywords accept a category on a single hit. Nil means no strong table.
	Strong *Table
	// Fallback is returned when no category qualifies. It need not appear in Broad.
	Fallback string
	// GenericCategory names the category whose GenericTerms are never counted.
	GenericCategory string
	GenericTerms    []string
}

// IsGeneric reports whether the normalized keyword is deny-listed for category.
// Deny-list entries are compared in normalized form.
func (t *Taxonomy) IsGeneric(category, normalizedKeyword string) bool {
	if t == nil || category != t.GenericCategory {
		return false
	}
	for _, term := range t.GenericTerms {
		if normalize.Normalize(term) == normalizedKeyword {
			return true
		}
	}
	return false
}
