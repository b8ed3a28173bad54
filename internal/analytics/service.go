package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deidaraiorek/csvcharts/internal/metrics"
	"github.com/deidaraiorek/csvcharts/internal/storage"
	"github.com/deidaraiorek/csvcharts/internal/wordfreq"
)

// Reader is the read side of a row source for one request.
type Reader interface {
	TextColumn(ctx context.Context, table, column string) ([]string, error)
	Rows(ctx context.Context, table string) ([][]string, error)
	GroupCounts(ctx context.Context, table, column string) ([]storage.NameCount, error)
	Close() error
}

type OpenFunc func(ctx context.Context) (Reader, error)

func FromSource(src *storage.Source) OpenFunc {
	return func(ctx context.Context) (Reader, error) {
		r, err := src.Open(ctx)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

type ColumnRef struct {
	Table  string
	Column string
}

type Sources struct {
	LocationTable string
	WordCloud     ColumnRef
	PublishTimes  ColumnRef
	Themes        ColumnRef
}

type Service struct {
	open     OpenFunc
	sources  Sources
	analyzer wordfreq.Analyzer
	topK     int
	logger   *zap.Logger
	observer *metrics.Observer
	location *time.Location
}

type Options struct {
	Sources  Sources
	Analyzer wordfreq.Analyzer
	TopK     int
	Logger   *zap.Logger
	Observer *metrics.Observer
	// Location interprets timestamps that carry no zone. Defaults to time.Local.
	Location *time.Location
}

func NewService(open OpenFunc, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = wordfreq.DefaultTopK
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		open:     open,
		sources:  opts.Sources,
		analyzer: opts.Analyzer,
		topK:     topK,
		logger:   logger.Named("analytics"),
		observer: opts.Observer,
		location: loc,
	}
}

// withReader opens a connection for the duration of fn and always closes it.
func (s *Service) withReader(ctx context.Context, fn func(Reader) error) error {
	reader, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open row source: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Warn("failed to close row source", zap.Error(err))
		}
	}()
	return fn(reader)
}
