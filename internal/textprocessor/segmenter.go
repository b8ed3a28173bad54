package textprocessor

import (
	"fmt"

	"github.com/go-ego/gse"
)

// Segmenter splits a single CJK run into dictionary words.
type Segmenter interface {
	Segment(run string) []string
}

// GseSegmenter is a dictionary segmenter backed by gse. It is read-only once
// loaded and safe to share between requests.
type GseSegmenter struct {
	seg gse.Segmenter
	hmm bool
}

// NewGseSegmenter loads the embedded simplified/traditional Chinese
// dictionaries, or the given dictionary files instead when any are passed.
func NewGseSegmenter(hmm bool, dictFiles ...string) (*GseSegmenter, error) {
	s := &GseSegmenter{hmm: hmm}

	if len(dictFiles) == 0 {
		if err := s.seg.LoadDictEmbed("zh"); err != nil {
			return nil, fmt.Errorf("failed to load embedded dictionary: %w", err)
		}
		return s, nil
	}

	if err := s.seg.LoadDict(dictFiles...); err != nil {
		return nil, fmt.Errorf("failed to load dictionary %v: %w", dictFiles, err)
	}
	return s, nil
}

func (s *GseSegmenter) Segment(run string) []string {
	return s.seg.Cut(run, s.hmm)
}
