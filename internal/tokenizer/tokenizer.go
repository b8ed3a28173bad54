package tokenizer

import (
	"iter"
)

// Class is the character class a run of text belongs to.
type Class int

const (
	ClassNone Class = iota
	ClassCJK
	ClassLatin
	ClassDigit
)

func (c Class) String() string {
	switch c {
	case ClassCJK:
		return "cjk"
	case ClassLatin:
		return "latin"
	case ClassDigit:
		return "digit"
	default:
		return "none"
	}
}

type Token struct {
	Text  string
	Class Class
}

// Classify maps a rune to its run class. Only the CJK unified ideograph block,
// ASCII letters and ASCII digits form runs; everything else is a boundary.
func Classify(r rune) Class {
	switch {
	case r >= 0x4e00 && r <= 0x9fff:
		return ClassCJK
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return ClassLatin
	case r >= '0' && r <= '9':
		return ClassDigit
	default:
		return ClassNone
	}
}

// Runs yields every maximal single-class run of text in encounter order.
// Runs of different classes are never merged, so "abc123" yields "abc" and "123".
func Runs(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		start, current := 0, ClassNone
		for i, r := range text {
			class := Classify(r)
			if class == current {
				continue
			}
			if current != ClassNone && !yield(Token{Text: text[start:i], Class: current}) {
				return
			}
			start, current = i, class
		}
		if current != ClassNone {
			yield(Token{Text: text[start:], Class: current})
		}
	}
}

func Split(text string) []Token {
	tokens := make([]Token, 0)
	for tok := range Runs(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}
