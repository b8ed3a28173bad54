package wordfreq_test

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deidaraiorek/csvcharts/internal/textprocessor"
	"github.com/deidaraiorek/csvcharts/internal/tokenizer"
	"github.com/deidaraiorek/csvcharts/internal/wordfreq"
)

type fieldsAnalyzer struct{}

func (fieldsAnalyzer) Tokens(text string) iter.Seq[string] {
	return slices.Values(strings.Fields(text))
}

type lexiconSegmenter map[string]bool

func (s lexiconSegmenter) Segment(run string) []string {
	runes := []rune(run)
	var out []string
	for i := 0; i < len(runes); {
		end := i + 1
		for j := len(runes); j > i+1; j-- {
			if s[string(runes[i:j])] {
				end = j
				break
			}
		}
		out = append(out, string(runes[i:end]))
		i = end
	}
	return out
}

func TestTableFirstSeenOrder(t *testing.T) {
	table := wordfreq.NewTable()
	for _, token := range []string{"b", "a", "b", "c", "a", "b"} {
		table.Add(token)
	}

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 3, table.Count("b"))
	assert.Equal(t, 0, table.Count("missing"))
	assert.Equal(t, []wordfreq.Entry{{"b", 3}, {"a", 2}, {"c", 1}}, table.Entries())
}

func TestTopTieBreaksByFirstSeen(t *testing.T) {
	table := wordfreq.NewTable()
	for _, token := range []string{"x", "y", "z", "z", "y", "w"} {
		table.Add(token)
	}

	assert.Equal(t, []wordfreq.Entry{{"y", 2}, {"z", 2}, {"x", 1}, {"w", 1}}, table.Top(10))
	assert.Equal(t, []wordfreq.Entry{{"y", 2}}, table.Top(1))
	assert.Empty(t, table.Top(0))
}

func TestCorpusRanking(t *testing.T) {
	analyzer := textprocessor.NewTextProcessor(textprocessor.Options{
		StopWords: tokenizer.NewStopWordSet("的"),
		Segmenter: lexiconSegmenter{"很棒": true, "视频": true, "内容": true, "精彩": true},
	})
	corpus := []string{"很棒的视频", "很棒的内容", "精彩内容"}

	cloud := wordfreq.BuildCloud(corpus, analyzer, 4)

	assert.Equal(t, 3, cloud.TotalTexts)
	assert.Equal(t, []wordfreq.Entry{
		{"很棒", 2},
		{"内容", 2},
		{"视频", 1},
		{"精彩", 1},
	}, cloud.Words)
}

func TestCorpusRankingWholeRuns(t *testing.T) {
	analyzer := textprocessor.NewTextProcessor(textprocessor.Options{
		StopWords: tokenizer.NewStopWordSet("的"),
	})

	cloud := wordfreq.BuildCloud([]string{"很棒的视频", "很棒的视频", "精彩内容"}, analyzer, 0)

	assert.Equal(t, []wordfreq.Entry{{"很棒的视频", 2}, {"精彩内容", 1}}, cloud.Words)
}

func TestBuildCloudIdempotent(t *testing.T) {
	analyzer := textprocessor.NewTextProcessor(textprocessor.Options{StopWords: tokenizer.DefaultStopWords()})
	corpus := []string{"这个视频非常好看 great", "好看 great 2024", "推荐 推荐 great"}

	first := wordfreq.BuildCloud(corpus, analyzer, 100)
	second := wordfreq.BuildCloud(corpus, analyzer, 100)

	assert.Equal(t, first, second)
}

func TestBuildCloudTruncatesToK(t *testing.T) {
	var corpus []string
	for i := 0; i < 150; i++ {
		token := fmt.Sprintf("tok%03d", i)
		// Counts cycle 1..5 so many tokens tie at the cut-off.
		corpus = append(corpus, strings.Repeat(token+" ", i%5+1))
	}

	cloud := wordfreq.BuildCloud(corpus, fieldsAnalyzer{}, 100)
	require.Len(t, cloud.Words, 100)

	kept := make(map[string]bool, len(cloud.Words))
	for i, entry := range cloud.Words {
		kept[entry.Token] = true
		if i > 0 {
			assert.LessOrEqual(t, entry.Count, cloud.Words[i-1].Count)
		}
	}

	last := cloud.Words[len(cloud.Words)-1].Count
	table, _ := wordfreq.Count(corpus, fieldsAnalyzer{})
	for _, entry := range table.Entries() {
		if !kept[entry.Token] {
			assert.LessOrEqual(t, entry.Count, last, "omitted %s outranks the cut-off", entry.Token)
		}
	}
}

func TestBuildCloudFewerThanK(t *testing.T) {
	cloud := wordfreq.BuildCloud([]string{"aa bb", "bb cc"}, fieldsAnalyzer{}, 100)

	assert.Equal(t, []wordfreq.Entry{{"bb", 2}, {"aa", 1}, {"cc", 1}}, cloud.Words)
	assert.Equal(t, 2, cloud.TotalTexts)
}

func TestBuildCloudEmptyCorpus(t *testing.T) {
	for _, corpus := range [][]string{nil, {}, {"", "   ", "\t"}} {
		cloud := wordfreq.BuildCloud(corpus, fieldsAnalyzer{}, 100)

		assert.Empty(t, cloud.Words)
		assert.Equal(t, 0, cloud.TotalTexts)
	}
}
