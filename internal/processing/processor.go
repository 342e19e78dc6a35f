package processing

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/DeafMist/news-tagger/internal/normalize"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	alphaWord  = regexp.MustCompile(`[a-zA-ZáéíóúÁÉÍÓÚñÑ]+`)
	markupHint = regexp.MustCompile(`<[a-zA-Z!/][^>]*>|&[a-zA-Z#][a-zA-Z0-9]*;`)
)

// Stopwords is a set of normalized function words ignored by TopWords.
type Stopwords map[string]struct{}

// NewStopwords builds a set from words, normalizing each.
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[normalize.Normalize(w)] = struct{}{}
	}
	return s
}

// Has reports whether word is in the set.
func (s Stopwords) Has(word string) bool {
	_, ok := s[word]
	return ok
}

var defaultStopwords = []string{
	// es
	"el", "la", "los", "las", "y", "en", "de", "del", "un", "una", "que", "por", "con", "a", "o",
	"se", "al", "como", "su", "sus", "para", "es", "son", "fue", "ser", "esta", "este", "estos",
	// en
	"the", "and", "of", "in", "to", "for", "on", "is", "are", "be", "as", "by", "it", "that", "at",
	// pt
	"o", "a", "os", "as", "de", "do", "da", "e", "em", "para", "que", "com", "no", "na",
}

// DefaultStopwords returns the Spanish, English and Portuguese stopword set.
func DefaultStopwords() Stopwords {
	return NewStopwords(defaultStopwords...)
}

// TopWords returns up to n of the most frequent words of text. Tokens are
// alphabetic runs, normalized; tokens of two runes or fewer and stopwords are
// dropped. Ties keep the order in which words first appeared.
func TopWords(text string, n int, stop Stopwords) []string {
	if n <= 0 {
		return []string{}
	}

	freq := make(map[string]int)
	var order []string
	for _, token := range alphaWord.FindAllString(text, -1) {
		token = normalize.Normalize(token)
		if utf8.RuneCountInString(token) <= 2 || stop.Has(token) {
			continue
		}
		if _, ok := freq[token]; !ok {
			order = append(order, token)
		}
		freq[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return append([]string{}, order...)
}

// SanitizeText replaces non-breaking spaces and squeezes whitespace.
func SanitizeText(input string) string {
	if input == "" {
		return ""
	}
	s := strings.ReplaceAll(input, "\u00a0", " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripMarkup returns the visible text of an HTML fragment. Input without
// tags or entities is returned unchanged.
func StripMarkup(input string) string {
	if !markupHint.MatchString(input) {
		return input
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return input
	}
	doc.Find("script,noscript,style").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})
	return doc.Text()
}

// CleanText strips markup and squeezes whitespace.
func CleanText(input string) string {
	return SanitizeText(StripMarkup(input))
}

// BuildDocumentID hashes the stable fields of an article into a deterministic ID.
func BuildDocumentID(title, text string) string {
	if title == "" && text == "" {
		return ""
	}
	s := sha1.Sum([]byte(title + "|" + text))
	return hex.EncodeToString(s[:])
}
