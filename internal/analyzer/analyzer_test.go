package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/analyzer"
	"github.com/DeafMist/news-tagger/internal/classify"
)

type stubDetector struct{ lang string }

func (s stubDetector) Detect(string) string { return s.lang }

func TestAnalyze(t *testing.T) {
	a := analyzer.New(nil)

	tests := []struct {
		name     string
		document string
		category string
		reason   string
		score    int
	}{
		{
			name:     "score over threshold",
			document: "Title: Central bank raises interest rate amid inflation fears\nDescription:\n\nbody text",
			category: "Economy",
			reason:   "score>=2 (2)",
			score:    2,
		},
		{
			name:     "strong keyword",
			document: "Title: IPO announced for major tech firm\n",
			category: "Business",
			reason:   "strong_keyword:ipo",
			score:    1,
		},
		{
			name:     "sports strong keyword",
			document: "Title: Major win in the final\n",
			category: "Sports",
			reason:   "strong_keyword:final",
			score:    1,
		},
		{
			name:     "no hits",
			document: "Title: Technology data platform software\n",
			category: "General",
			reason:   classify.ReasonNoHits,
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze("doc.txt", tt.document)
			require.Equal(t, "doc.txt", got.File)
			require.Equal(t, tt.category, got.Category)
			require.Equal(t, tt.reason, got.CategoryReason)
			require.Equal(t, tt.score, got.CategoryScore)
		})
	}
}

func TestAnalyzeKeepsOnlyNonEmptyHits(t *testing.T) {
	a := analyzer.New(nil)

	got := a.Analyze("a.txt", "Title: Central bank raises interest rate amid inflation fears")
	require.Equal(t, "Central bank raises interest rate amid inflation fears", got.Title)
	require.Equal(t, map[string][]string{
		"Economy":    {"inflation", "interest rate"},
		"Technology": {"ai"},
	}, got.CategoryHits)

	empty := a.Analyze("b.txt", "Title: Technology data platform software")
	require.NotNil(t, empty.CategoryHits)
	require.Empty(t, empty.CategoryHits)
	require.NotNil(t, empty.Names)
	require.NotNil(t, empty.Places)
	require.NotNil(t, empty.Dates)
}

func TestAnalyzeWithoutHeaderUsesWholeDocument(t *testing.T) {
	a := analyzer.New(nil)

	got := a.Analyze("raw.txt", "Central bank raises interest rate amid inflation fears")
	require.Empty(t, got.Title)
	require.Equal(t, "Economy", got.Category)
	require.Equal(t, "score>=2 (2)", got.CategoryReason)
}

func TestAnalyzeIgnoresBody(t *testing.T) {
	a := analyzer.New(nil)

	got := a.Analyze("x.txt", "Title: Technology data platform software\n\ninflation interest rate inflation")
	require.Equal(t, "General", got.Category)
	require.Equal(t, classify.ReasonNoHits, got.CategoryReason)
}

func TestAnalyzeOptions(t *testing.T) {
	doc := "Title: IPO announced for major tech firm"

	strict := analyzer.New(nil, analyzer.WithAllowStrong(false))
	got := strict.Analyze("x", doc)
	require.Equal(t, "General", got.Category)
	require.Equal(t, classify.ReasonFallback, got.CategoryReason)
	require.Equal(t, 1, got.CategoryScore)

	lenient := analyzer.New(nil, analyzer.WithAllowStrong(false), analyzer.WithMinMatches(1))
	got = lenient.Analyze("x", doc)
	require.Equal(t, "Business", got.Category)
	require.Equal(t, "score>=1 (1)", got.CategoryReason)

	few := analyzer.New(nil, analyzer.WithTopWords(1))
	got = few.Analyze("x", "Title: Inflación récord: la inflación golpea a Bogotá")
	require.Equal(t, []string{"inflacion"}, got.TopWords)
}

func TestAnalyzeEntities(t *testing.T) {
	a := analyzer.New(nil)

	got := a.Analyze("x", "Title: José Pérez visita Bogotá el 12 de marzo de 2024")
	require.Contains(t, got.Names, "José Pérez")
	require.Contains(t, got.Places, "bogota")
	require.Contains(t, got.Dates, "12 de marzo de 2024")
}

func TestAnalyzeLanguage(t *testing.T) {
	plain := analyzer.New(nil)
	require.Empty(t, plain.Analyze("x", "Title: hola").Language)

	detected := analyzer.New(nil, analyzer.WithLanguageDetector(stubDetector{lang: "es"}))
	require.Equal(t, "es", detected.Analyze("x", "Title: hola").Language)
}

func TestAnalyzeFields(t *testing.T) {
	a := analyzer.New(nil)

	got := a.AnalyzeFields("f", "Central bank raises\ninterest rate", "amid inflation fears", "")
	require.Equal(t, "Central bank raises interest rate", got.Title)
	require.Equal(t, "Economy", got.Category)
}

func TestDocument(t *testing.T) {
	require.Equal(t, "Title: A\nDescription: B\n\nbody", analyzer.Document(" A ", "B", "body\n"))
	require.Equal(t, "Title: A\n", analyzer.Document("A", "", ""))
	require.Equal(t, "body", analyzer.Document("", "", "body"))
	require.Empty(t, analyzer.Document("", " ", ""))
}

func TestWithSettingsLeavesOriginal(t *testing.T) {
	a := analyzer.New(nil)
	b := a.WithSettings(1, false)

	require.Equal(t, 2, a.MinMatches())
	require.True(t, a.AllowStrong())
	require.Equal(t, 1, b.MinMatches())
	require.False(t, b.AllowStrong())
	require.Same(t, a.Taxonomy(), b.Taxonomy())

	doc := "Title: IPO announced for major tech firm"
	require.Equal(t, "strong_keyword:ipo", a.Analyze("x", doc).CategoryReason)
	require.Equal(t, "score>=1 (1)", b.Analyze("x", doc).CategoryReason)
}
