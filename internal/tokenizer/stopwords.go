package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// StopWordSet is an immutable set of words excluded from counting.
// The zero value is an empty set.
type StopWordSet struct {
	words map[string]struct{}
}

func NewStopWordSet(words ...string) StopWordSet {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return StopWordSet{words: set}
}

func (s StopWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWordSet) Len() int {
	return len(s.words)
}

// LoadStopWords reads one word per line. Blank lines and lines starting with
// '#' are ignored.
func LoadStopWords(path string) (StopWordSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return StopWordSet{}, fmt.Errorf("failed to open stop word file: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return StopWordSet{}, fmt.Errorf("failed to read stop word file: %w", err)
	}
	return NewStopWordSet(words...), nil
}

func DefaultStopWords() StopWordSet {
	words := []string{
		// Particles and function words
		"的", "了", "在", "是", "我", "有", "和", "就", "不", "人", "都", "一", "一个",
		"上", "也", "很", "到", "说", "要", "去", "你", "会", "着", "没有", "看", "好",
		"这", "那", "来", "个", "为", "与", "及", "等",

		// Intensifiers
		"更", "最", "非常", "特别", "真的", "超级", "绝对", "完全", "太",

		// Quantifiers
		"很多", "许多", "大量",
	}
	return NewStopWordSet(words...)
}
