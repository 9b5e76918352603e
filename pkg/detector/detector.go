package detector

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minDetectRunes is the shortest text worth running detection on. Shorter
// texts are reported as undetermined.
const minDetectRunes = 40

// languages covers the languages most often mixed into English-language
// encyclopedia categories (transliterated titles, quotations, stubs).
var languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Latin,
}

// LanguageDetector reports the language of page text.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector. Language models are loaded on first
// use and are large, so a single instance should be shared.
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of text ("en", "de") and
// whether a language could be determined.
func (d *LanguageDetector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minDetectRunes {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// IsEnglish reports whether text should be kept by an English-only filter.
// Undetermined texts are kept.
func (d *LanguageDetector) IsEnglish(text string) bool {
	code, ok := d.Detect(text)
	return !ok || code == "en"
}
