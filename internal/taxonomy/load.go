package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileCategory struct {
	Keywords []string  `yaml:"keywords"`
	Strong   *[]string `yaml:"strong"`
}

type fileTaxonomy struct {
	Fallback        string    `yaml:"fallback"`
	GenericCategory string    `yaml:"generic_category"`
	GenericTerms    []string  `yaml:"generic_terms"`
	Categories      yaml.Node `yaml:"categories"`
}

// Load reads a YAML taxonomy:
//
//	fallback: General
//	generic_category: Technology
//	generic_terms: [technology, data]
//	categories:
//	  Economy:
//	    keywords: [inflation, gdp]
//	    strong: [central bank]
//
// Category order follows the document. When no category declares "strong"
// the resulting taxonomy has no strong table.
func Load(r io.Reader) (*Taxonomy, error) {
	var doc fileTaxonomy
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}

	var broad, strong []Category
	hasStrong := false

	switch doc.Categories.Kind {
	case 0:
		// no categories section
	case yaml.MappingNode:
		nodes := doc.Categories.Content
		for i := 0; i+1 < len(nodes); i += 2 {
			name := strings.TrimSpace(nodes[i].Value)
			if name == "" {
				return nil, fmt.Errorf("taxonomy line %d: empty category name", nodes[i].Line)
			}
			var fc fileCategory
			if err := nodes[i+1].Decode(&fc); err != nil {
				return nil, fmt.Errorf("decode category %q: %w", name, err)
			}
			broad = append(broad, Category{Name: name, Keywords: fc.Keywords})
			if fc.Strong != nil {
				hasStrong = true
				strong = append(strong, Category{Name: name, Keywords: *fc.Strong})
			}
		}
	default:
		if doc.Categories.Tag == "!!null" {
			break
		}
		return nil, fmt.Errorf("taxonomy line %d: categories must be a mapping", doc.Categories.Line)
	}

	t := &Taxonomy{
		Broad:           NewTable(broad...),
		Fallback:        strings.TrimSpace(doc.Fallback),
		GenericCategory: strings.TrimSpace(doc.GenericCategory),
		GenericTerms:    doc.GenericTerms,
	}
	if t.Fallback == "" {
		t.Fallback = DefaultFallback
	}
	if hasStrong {
		t.Strong = NewTable(strong...)
	}
	return t, nil
}

// LoadFile reads a taxonomy from path.
func LoadFile(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// FromFileOrDefault returns the built-in taxonomy when path is empty.
func FromFileOrDefault(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
