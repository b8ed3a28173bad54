package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/wordfreq"
)

type WordCloudResult struct {
	Data         []NameValue `json:"data"`
	TotalReasons int         `json:"total_reasons"`
	TotalWords   int         `json:"total_words"`
}

// WordCloud ranks the most frequent keywords of the configured free-text
// column.
func (s *Service) WordCloud(ctx context.Context) (*WordCloudResult, error) {
	var texts []string
	err := s.withReader(ctx, func(r Reader) error {
		var err error
		texts, err = r.TextColumn(ctx, s.sources.WordCloud.Table, s.sources.WordCloud.Column)
		return err
	})
	if err != nil {
		return nil, err
	}

	cloud := wordfreq.BuildCloud(texts, s.analyzer, s.topK)

	data := make([]NameValue, 0, len(cloud.Words))
	for _, w := range cloud.Words {
		data = append(data, NameValue{Name: w.Token, Value: w.Count})
	}

	s.observer.ObserveWordCloud(cloud.TotalTexts, len(data))
	s.logger.Debug("word cloud built",
		zap.Int("texts", cloud.TotalTexts),
		zap.Int("words", len(data)),
	)

	return &WordCloudResult{
		Data:         data,
		TotalReasons: cloud.TotalTexts,
		TotalWords:   len(data),
	}, nil
}
