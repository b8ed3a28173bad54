package textprocessor

import (
	"iter"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/deidaraiorek/csvcharts/internal/tokenizer"
)

type Options struct {
	StopWords tokenizer.StopWordSet
	// Segmenter further splits CJK runs. Nil keeps each run as one token.
	Segmenter Segmenter
	StemLatin bool
	// FoldWidth applies NFKC before tokenizing so full-width letters and
	// digits become ASCII runs.
	FoldWidth bool
}

type TextProcessor struct {
	filter    *tokenizer.Filter
	segmenter Segmenter
	stemmer   *Stemmer
	foldWidth bool
}

func NewTextProcessor(opts Options) *TextProcessor {
	tp := &TextProcessor{
		filter:    tokenizer.NewFilter(opts.StopWords),
		segmenter: opts.Segmenter,
		foldWidth: opts.FoldWidth,
	}
	if opts.StemLatin {
		tp.stemmer = NewStemmer()
	}
	return tp
}

// Tokens yields the tokens of text that survive filtering, in encounter order.
func (tp *TextProcessor) Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if tp.foldWidth {
			text = norm.NFKC.String(text)
		}

		for run := range tokenizer.Runs(text) {
			if run.Class == tokenizer.ClassCJK && tp.segmenter != nil {
				for _, word := range tp.segmenter.Segment(run.Text) {
					if !tp.emit(word, run.Class, yield) {
						return
					}
				}
				continue
			}
			if !tp.emit(run.Text, run.Class, yield) {
				return
			}
		}
	}
}

func (tp *TextProcessor) emit(word string, class tokenizer.Class, yield func(string) bool) bool {
	if !tp.filter.Keep(word) {
		return true
	}
	word = strings.TrimSpace(word)
	if class == tokenizer.ClassLatin && tp.stemmer != nil {
		word = tp.stemmer.Stem(word)
	}
	return yield(word)
}

func (tp *TextProcessor) Process(text string) []string {
	tokens := make([]string, 0)
	for token := range tp.Tokens(text) {
		tokens = append(tokens, token)
	}
	return tokens
}
