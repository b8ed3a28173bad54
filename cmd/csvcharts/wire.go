package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/analytics"
	"github.com/deidaraiorek/csvcharts/internal/config"
	"github.com/deidaraiorek/csvcharts/internal/metrics"
	"github.com/deidaraiorek/csvcharts/internal/storage"
	"github.com/deidaraiorek/csvcharts/internal/textprocessor"
	"github.com/deidaraiorek/csvcharts/internal/tokenizer"
)

// bind lets a flag override the config key only when it is set explicitly.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}

func newTextProcessor(cfg config.WordCloudConfig, logger *zap.Logger) (*textprocessor.TextProcessor, error) {
	stopWords := tokenizer.DefaultStopWords()
	if cfg.StopWordsFile != "" {
		loaded, err := tokenizer.LoadStopWords(cfg.StopWordsFile)
		if err != nil {
			return nil, err
		}
		stopWords = loaded
	}

	opts := textprocessor.Options{
		StopWords: stopWords,
		StemLatin: cfg.StemLatin,
		FoldWidth: cfg.FoldWidth,
	}
	if cfg.Segmentation == config.SegmentationDictionary {
		seg, err := textprocessor.NewGseSegmenter(false, cfg.DictionaryFiles...)
		if err != nil {
			return nil, err
		}
		opts.Segmenter = seg
	}

	logger.Info("text processor ready",
		zap.Int("stop_words", stopWords.Len()),
		zap.String("segmentation", cfg.Segmentation),
		zap.Bool("stem_latin", cfg.StemLatin),
		zap.Bool("fold_width", cfg.FoldWidth),
	)
	return textprocessor.NewTextProcessor(opts), nil
}

func newAnalyticsService(cfg *config.Config, logger *zap.Logger, observer *metrics.Observer) (*analytics.Service, error) {
	processor, err := newTextProcessor(cfg.WordCloud, logger)
	if err != nil {
		return nil, err
	}

	src := cfg.Sources
	return analytics.NewService(analytics.FromSource(storage.NewSource(cfg.Database.Path)), analytics.Options{
		Sources: analytics.Sources{
			LocationTable: src.Location.Table,
			WordCloud:     analytics.ColumnRef(src.WordCloud),
			PublishTimes:  analytics.ColumnRef(src.PublishTimes),
			Themes:        analytics.ColumnRef(src.Themes),
		},
		Analyzer: processor,
		TopK:     cfg.WordCloud.TopK,
		Logger:   logger,
		Observer: observer,
	}), nil
}
