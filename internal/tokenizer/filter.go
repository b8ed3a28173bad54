package tokenizer

import (
	"strings"
	"unicode/utf8"
)

const minTokenLength = 2

type Filter struct {
	StopWords StopWordSet
	minLength int
}

func NewFilter(stopWords StopWordSet) *Filter {
	return &Filter{
		StopWords: stopWords,
		minLength: minTokenLength,
	}
}

// Keep reports whether a candidate token should be counted. The length check
// runs before the stop-word lookup and applies to every token.
func (f *Filter) Keep(token string) bool {
	token = strings.TrimSpace(token)
	if utf8.RuneCountInString(token) < f.minLength {
		return false
	}
	return !f.StopWords.Contains(token)
}
