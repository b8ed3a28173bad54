package textprocessor

import (
	"github.com/kljensen/snowball"
)

type Stemmer struct {
	language string
}

func NewStemmer() *Stemmer {
	return &Stemmer{language: "english"}
}

func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		return word
	}
	return stemmed
}
