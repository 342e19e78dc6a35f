package classify

import (
	"regexp"
	"strings"

	"github.com/DeafMist/news-tagger/internal/normalize"
)

// keyword is a normalized keyword with its whole-word pattern.
type keyword struct {
	text string
	word *regexp.Regexp
}

func compileKeyword(raw string) (keyword, bool) {
	text := normalize.Normalize(raw)
	if strings.TrimSpace(text) == "" {
		return keyword{}, false
	}
	return keyword{
		text: text,
		word: regexp.MustCompile(`\b` + regexp.QuoteMeta(text) + `\b`),
	}, true
}

// in reports whether the keyword occurs in normalized text, either as a whole
// word or as a plain substring. The substring check covers phrases whose
// punctuation defeats the word boundaries.
func (k keyword) in(normalized string) bool {
	return k.word.MatchString(normalized) || strings.Contains(normalized, k.text)
}

func compileList(raw []string) []keyword {
	out := make([]keyword, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		k, ok := compileKeyword(r)
		if !ok {
			continue
		}
		if _, dup := seen[k.text]; dup {
			continue
		}
		seen[k.text] = struct{}{}
		out = append(out, k)
	}
	return out
}
