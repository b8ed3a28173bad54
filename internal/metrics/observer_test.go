package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver("test", reg)
	require.NoError(t, err)

	o.RecordDegraded("/api/health")
	o.RecordDegraded("/api/health")
	o.RecordSkippedTimestamps(3)
	o.RecordSkippedTimestamps(0)
	o.ObserveRequest("/api/health", 200, 10*time.Millisecond)
	o.ObserveWordCloud(12, 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.degradedResponses.WithLabelValues("/api/health")))
	assert.Equal(t, 3.0, testutil.ToFloat64(o.skippedTimestamps))
	assert.Equal(t, 1, testutil.CollectAndCount(o.requestDuration))
}

func TestObserverReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewObserver("test", reg)
	require.NoError(t, err)
	second, err := NewObserver("test", reg)
	require.NoError(t, err)

	second.RecordSkippedTimestamps(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.skippedTimestamps))
}

func TestNilObserver(t *testing.T) {
	var o *Observer
	assert.NotPanics(t, func() {
		o.RecordDegraded("x")
		o.RecordSkippedTimestamps(1)
		o.ObserveRequest("x", 200, time.Second)
		o.ObserveWordCloud(1, 1)
	})
}
