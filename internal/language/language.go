package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a short text. It returns an ISO 639-1
// code in lower case, or "" when unsure.
type Detector interface {
	Detect(text string) string
}

// Lingua detects Spanish, English and Portuguese with lingua-go.
type Lingua struct {
	detector lingua.LanguageDetector
}

// NewLingua builds a detector restricted to the corpus languages.
// Building loads language models and is expensive; share the result.
func NewLingua() *Lingua {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Spanish, lingua.English, lingua.Portuguese).
		Build()
	return &Lingua{detector: d}
}

// Detect implements Detector.
func (l *Lingua) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
