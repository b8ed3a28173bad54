package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer exports API and aggregation metrics to Prometheus. A nil *Observer
// is valid and records nothing.
type Observer struct {
	requestDuration   *prometheus.HistogramVec
	degradedResponses *prometheus.CounterVec
	skippedTimestamps prometheus.Counter
	wordCloudTexts    prometheus.Histogram
	wordCloudTokens   prometheus.Histogram
}

func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = "csvcharts"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of API requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		degradedResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_responses_total",
			Help:      "Requests answered with success=false.",
		}, []string{"route"}),
		skippedTimestamps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_timestamps_total",
			Help:      "Publish timestamps that could not be parsed.",
		}),
		wordCloudTexts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wordcloud_texts",
			Help:      "Qualifying source texts per word cloud request.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		wordCloudTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wordcloud_ranked_tokens",
			Help:      "Ranked tokens emitted per word cloud request.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	var err error
	if o.requestDuration, err = register(reg, o.requestDuration); err != nil {
		return nil, err
	}
	if o.degradedResponses, err = register(reg, o.degradedResponses); err != nil {
		return nil, err
	}
	if o.skippedTimestamps, err = register(reg, o.skippedTimestamps); err != nil {
		return nil, err
	}
	if o.wordCloudTexts, err = register(reg, o.wordCloudTexts); err != nil {
		return nil, err
	}
	if o.wordCloudTokens, err = register(reg, o.wordCloudTokens); err != nil {
		return nil, err
	}
	return o, nil
}

// register tolerates a collector that is already registered under the same
// descriptor and hands back the existing one.
func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("register metric: %w", err)
	}
	return collector, nil
}

func (o *Observer) ObserveRequest(route string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	o.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (o *Observer) RecordDegraded(route string) {
	if o == nil {
		return
	}
	o.degradedResponses.WithLabelValues(route).Inc()
}

func (o *Observer) RecordSkippedTimestamps(n int) {
	if o == nil || n <= 0 {
		return
	}
	o.skippedTimestamps.Add(float64(n))
}

func (o *Observer) ObserveWordCloud(texts, tokens int) {
	if o == nil {
		return
	}
	o.wordCloudTexts.Observe(float64(texts))
	o.wordCloudTokens.Observe(float64(tokens))
}
