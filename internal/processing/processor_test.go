package processing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/processing"
)

func TestTopWords(t *testing.T) {
	stop := processing.NewStopwords("the", "and", "on")
	got := processing.TopWords("The cat sat on the mat and the cat ran", 2, stop)
	require.Equal(t, []string{"cat", "sat"}, got)
}

func TestTopWordsDefaults(t *testing.T) {
	text := "Inflación récord: la inflación golpea a Bogotá y la economía de Bogotá"
	got := processing.TopWords(text, 12, processing.DefaultStopwords())
	require.Equal(t, []string{"inflacion", "bogota", "record", "golpea", "economia"}, got)
}

func TestTopWordsEdgeCases(t *testing.T) {
	stop := processing.DefaultStopwords()

	require.Empty(t, processing.TopWords("", 5, stop))
	require.Empty(t, processing.TopWords("cat cat", 0, stop))
	require.Equal(t, []string{"gol"}, processing.TopWords("Go go gol 2024", 5, stop))
	require.Equal(t, []string{"espana"}, processing.TopWords("ESPAÑA", 3, nil))
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "nbsp", input: "Hola\u00a0mundo", want: "Hola mundo"},
		{name: "collapse whitespace", input: "  foo\n\nbar\t baz ", want: "foo bar baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.SanitizeText(tt.input))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "No markup < here", want: "No markup < here"},
		{name: "tags and entities", input: "<p>Dengue&nbsp;outbreak <b>in</b>   Lima</p>", want: "Dengue outbreak in Lima"},
		{name: "script removed", input: "<div>Votes<script>track()</script> counted</div>", want: "Votes counted"},
		{name: "entity only", input: "AT&amp;T earnings", want: "AT&T earnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.CleanText(tt.input))
		})
	}
}

func TestBuildDocumentID(t *testing.T) {
	id1 := processing.BuildDocumentID("title", "text")
	id2 := processing.BuildDocumentID("title", "text")
	require.NotEmpty(t, id1)
	require.Equal(t, id1, id2)
	require.NotEqual(t, id1, processing.BuildDocumentID("title", "other"))
	require.Empty(t, processing.BuildDocumentID("", ""))
}
