package analyzer

import (
	"strings"

	"github.com/DeafMist/news-tagger/internal/classify"
	"github.com/DeafMist/news-tagger/internal/entities"
	"github.com/DeafMist/news-tagger/internal/header"
	"github.com/DeafMist/news-tagger/internal/language"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/normalize"
	"github.com/DeafMist/news-tagger/internal/processing"
	"github.com/DeafMist/news-tagger/internal/taxonomy"
)

// DefaultTopWords is the number of frequent words kept per article.
const DefaultTopWords = 12

// Analyzer classifies article documents against a fixed taxonomy. It holds no
// mutable state and may be shared between goroutines.
type Analyzer struct {
	tax         *taxonomy.Taxonomy
	collector   *classify.Collector
	selector    *classify.Selector
	stopwords   processing.Stopwords
	detector    language.Detector
	topWords    int
	minMatches  int
	allowStrong bool
	maxEntities int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTopWords sets how many frequent words are reported.
func WithTopWords(n int) Option { return func(a *Analyzer) { a.topWords = n } }

// WithMinMatches sets the hit count that accepts a category outright.
func WithMinMatches(n int) Option { return func(a *Analyzer) { a.minMatches = n } }

// WithAllowStrong toggles single-hit acceptance through strong keywords.
func WithAllowStrong(allow bool) Option { return func(a *Analyzer) { a.allowStrong = allow } }

// WithStopwords replaces the stopword set used for frequent words.
func WithStopwords(s processing.Stopwords) Option { return func(a *Analyzer) { a.stopwords = s } }

// WithMaxEntities caps each entity list.
func WithMaxEntities(n int) Option { return func(a *Analyzer) { a.maxEntities = n } }

// WithLanguageDetector annotates records with a detected language.
func WithLanguageDetector(d language.Detector) Option {
	return func(a *Analyzer) { a.detector = d }
}

// New builds an Analyzer for tax. A nil taxonomy means the built-in one.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Analyzer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	a := &Analyzer{
		tax:         tax,
		collector:   classify.NewCollector(tax),
		selector:    classify.NewSelector(tax.Fallback, tax.Strong),
		stopwords:   processing.DefaultStopwords(),
		topWords:    DefaultTopWords,
		minMatches:  classify.DefaultMinMatches,
		allowStrong: classify.DefaultAllowStrong,
		maxEntities: entities.DefaultMaxItems,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Taxonomy returns the taxonomy the analyzer classifies against.
func (a *Analyzer) Taxonomy() *taxonomy.Taxonomy { return a.tax }

// Analyze classifies one document. Only the Title and Description header
// lines are used; a document without them is analyzed as a whole.
func (a *Analyzer) Analyze(id, document string) models.Analysis {
	h := header.Parse(document)

	text := strings.TrimSpace(h.Title + " " + h.Description)
	if text == "" {
		text = document
	}

	normalized := normalize.Normalize(text)
	hits := a.collector.Collect(normalized)
	decision := a.selector.Select(normalized, hits, a.minMatches, a.allowStrong)
	found := entities.ExtractN(text, a.maxEntities)

	record := models.Analysis{
		File:           id,
		Title:          h.Title,
		Category:       decision.Category,
		CategoryReason: decision.Reason,
		CategoryScore:  decision.Score,
		CategoryHits:   hits.NonEmpty(),
		TopWords:       processing.TopWords(text, a.topWords, a.stopwords),
		Names:          found.Names,
		Places:         found.Places,
		Dates:          found.Dates,
	}
	if a.detector != nil {
		record.Language = a.detector.Detect(text)
	}
	return record
}

// AnalyzeFields classifies an article given as separate fields.
func (a *Analyzer) AnalyzeFields(id, title, description, body string) models.Analysis {
	return a.Analyze(id, Document(title, description, body))
}

// Document renders fields in the corpus file layout understood by Analyze.
func Document(title, description, body string) string {
	var b strings.Builder
	if title = processing.SanitizeText(title); title != "" {
		b.WriteString("Title: " + title + "\n")
	}
	if description = processing.SanitizeText(description); description != "" {
		b.WriteString("Description: " + description + "\n")
	}
	if body = strings.TrimSpace(body); body != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(body)
	}
	return b.String()
}

// WithSettings returns a copy of a using different acceptance rules. The
// compiled taxonomy is shared.
func (a *Analyzer) WithSettings(minMatches int, allowStrong bool) *Analyzer {
	c := *a
	c.minMatches = minMatches
	c.allowStrong = allowStrong
	return &c
}

// MinMatches returns the hit count that accepts a category outright.
func (a *Analyzer) MinMatches() int { return a.minMatches }

// AllowStrong reports whether strong keywords may accept a single hit.
func (a *Analyzer) AllowStrong() bool { return a.allowStrong }
