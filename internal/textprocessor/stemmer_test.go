package textprocessor_test

import (
	"testing"

	"github.com/deidaraiorek/csvcharts/internal/textprocessor"
)

func TestStem(t *testing.T) {
	stemmer := textprocessor.NewStemmer()

	tests := []struct {
		input    string
		expected string
	}{
		{"running", "run"},
		{"walked", "walk"},
		{"plays", "play"},
		{"videos", "video"},
		{"searches", "search"},
		{"stories", "stori"},
		{"algorithms", "algorithm"},
		{"learning", "learn"},
		{"data", "data"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := stemmer.Stem(tt.input)
			if result != tt.expected {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
