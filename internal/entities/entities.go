package entities

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DeafMist/news-tagger/internal/normalize"
)

// DefaultMaxItems caps each entity list.
const DefaultMaxItems = 15

// Entities are the heuristic mentions found in an article headline.
type Entities struct {
	Dates  []string `json:"dates"`
	Names  []string `json:"names"`
	Places []string `json:"places"`
}

var datePattern = regexp.MustCompile(`(?i)` +
	`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b` +
	`|\b\d{4}\b` +
	`|\b\d{1,2}\s+de\s+[a-z]+?\s+de\s+\d{4}\b` +
	`|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},\s+\d{4}\b`)

// Tokens that disqualify a capitalized sequence as a name.
var bannedNameTokens = map[string]struct{}{
	"El": {}, "La": {}, "Los": {}, "Las": {}, "Un": {}, "Una": {},
	"De": {}, "Del": {}, "Y": {}, "En": {}, "Da": {}, "Do": {}, "A": {},
}

var knownPlaces = []string{
	"costa rica", "estados unidos", "ee uu", "mexico", "espana", "españa", "argentina", "brasil",
	"colombia", "chile", "peru", "reino unido", "gran bretana", "francia", "alemania", "italia",
	"japon", "china", "lima", "bogota", "sao paulo", "rio de janeiro",
	"united states", "mexico", "spain", "argentina", "brazil", "colombia", "chile", "peru",
	"united kingdom", "france", "germany", "italy", "japan", "china", "london", "madrid",
	"paris", "berlin", "rome", "tokyo", "beijing", "lisbon", "porto", "portugal",
}

// places is knownPlaces normalized and de-duplicated, in list order.
var places = func() []string {
	out := make([]string, 0, len(knownPlaces))
	seen := make(map[string]struct{}, len(knownPlaces))
	for _, p := range knownPlaces {
		n := normalize.Normalize(p)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}()

// Extract runs all heuristics with DefaultMaxItems.
func Extract(text string) Entities {
	return ExtractN(text, DefaultMaxItems)
}

// ExtractN runs all heuristics keeping at most maxItems per list.
// A non-positive maxItems means no cap.
func ExtractN(text string, maxItems int) Entities {
	return Entities{
		Dates:  limit(unique(datePattern.FindAllString(text, -1)), maxItems),
		Names:  limit(unique(Names(text)), maxItems),
		Places: limit(Places(normalize.Normalize(text)), maxItems),
	}
}

// Places returns the known places contained in normalized text, in the order
// of the curated list.
func Places(normalized string) []string {
	found := []string{}
	for _, p := range places {
		if strings.Contains(normalized, p) {
			found = append(found, p)
		}
	}
	return found
}

// Names returns sequences of two to four capitalized words, skipping any
// sequence that contains a banned article or conjunction. Duplicates are kept.
func Names(text string) []string {
	var out []string
	for i := 0; i < len(text); {
		end, words := capitalizedRun(text, i)
		if words >= 2 {
			candidate := text[i:end]
			if !containsBanned(candidate) {
				out = append(out, candidate)
			}
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return out
}

// capitalizedRun matches up to four whitespace-separated capitalized words
// starting at i. It returns the end offset of the longest prefix of two or
// more words that ends on a word boundary, and its word count; words is 0 or
// 1 when no such prefix exists.
func capitalizedRun(text string, i int) (end, words int) {
	if !boundaryBefore(text, i) {
		return i, 0
	}
	pos := i
	var ends []int
	for len(ends) < 4 {
		start := pos
		if len(ends) > 0 {
			start = skipSpace(text, pos)
			if start == pos {
				break
			}
		}
		wordEnd, ok := capitalizedWord(text, start)
		if !ok {
			break
		}
		ends = append(ends, wordEnd)
		pos = wordEnd
	}
	for n := len(ends); n >= 2; n-- {
		if boundaryAfter(text, ends[n-1]) {
			return ends[n-1], n
		}
	}
	return i, 0
}

func capitalizedWord(text string, i int) (int, bool) {
	r, size := utf8.DecodeRuneInString(text[i:])
	if !isNameUpper(r) {
		return i, false
	}
	pos := i + size
	lower := 0
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !isNameLower(r) {
			break
		}
		pos += size
		lower++
	}
	return pos, lower > 0
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isNameUpper(r rune) bool {
	return (r >= 'A' && r <= 'Z') || strings.ContainsRune("ÁÉÍÓÚÑ", r)
}

func isNameLower(r rune) bool {
	return (r >= 'a' && r <= 'z') || strings.ContainsRune("áéíóúñ", r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func containsBanned(candidate string) bool {
	for _, tok := range strings.Fields(candidate) {
		if _, ok := bannedNameTokens[tok]; ok {
			return true
		}
	}
	return false
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func limit(items []string, maxItems int) []string {
	if maxItems > 0 && len(items) > maxItems {
		return items[:maxItems]
	}
	return items
}
