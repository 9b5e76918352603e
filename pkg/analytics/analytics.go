package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/wiki-word-freq/pkg/mapreduce"
)

// Analytics turns article text into word tokens. The zero value uses the
// process-wide stop-word set returned by StopWords.
type Analytics struct {
	stopWords map[string]struct{}
}

// New returns an Analytics that filters against the given stop words instead
// of the process-wide set. Words are expected in lowercase.
func New(stopWords []string) *Analytics {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[w] = struct{}{}
	}
	return &Analytics{stopWords: set}
}

func (a *Analytics) stopSet() map[string]struct{} {
	if a.stopWords != nil {
		return a.stopWords
	}
	return StopWords()
}

// Normalize lowercases text, turns punctuation into separators, drops digits
// and returns the remaining whitespace-separated tokens that are longer than
// one character and not stop words.
//
// Case folding happens before the stop-word lookup because the set is
// lowercase only.
func (a *Analytics) Normalize(text string) []string {
	text = strings.ToLower(text)

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r):
			return -1
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			return ' '
		}
		return r
	}, text)

	stop := a.stopSet()
	words := strings.Fields(cleaned)
	tokens := words[:0]
	for _, word := range words {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}
		if _, exists := stop[word]; exists {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// WordFrequency counts the normalized tokens of text.
func (a *Analytics) WordFrequency(text string) mapreduce.Table {
	return mapreduce.Map(text, a)
}

// TopNWords returns the n most frequent words of text.
func (a *Analytics) TopNWords(text string, n int) []string {
	top := mapreduce.Top(a.WordFrequency(text), n)

	words := make([]string, len(top))
	for i, wc := range top {
		words[i] = wc.Word
	}

	return words
}
