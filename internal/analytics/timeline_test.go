package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deidaraiorek/csvcharts/internal/analytics"
)

func TestTimeline(t *testing.T) {
	// 2023-11-06 is a Monday.
	reader := &fakeReader{texts: map[string][]string{
		"videos.published": {
			"2023-11-06 14:05:00",
			"2023/11/06 14:30",
			"2023-11-05 09:00",
			"not a date",
			"1699365600", // 2023-11-07 14:00:00 UTC
			"1699365600000",
			"2023",
		},
	}}

	result, err := newService(reader, 0).Timeline(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalVideos)
	assert.Equal(t, 2, result.Skipped)

	hourly := result.Data.Hourly
	require.Len(t, hourly.Categories, 24)
	assert.Equal(t, "00:00", hourly.Categories[0])
	assert.Equal(t, "23:00", hourly.Categories[23])
	assert.Equal(t, 4, hourly.Series[14])
	assert.Equal(t, 1, hourly.Series[9])
	assert.Equal(t, 14, result.PeakHour)

	assert.Equal(t, []string{"2023-11-05", "2023-11-06", "2023-11-07"}, result.Data.Daily.Categories)
	assert.Equal(t, []int{1, 2, 2}, result.Data.Daily.Series)
	assert.Equal(t, analytics.DateRange{Start: "2023-11-05", End: "2023-11-07"}, result.DateRange)

	weekday := result.Data.Weekday
	assert.Equal(t, analytics.WeekdayNames[:], weekday.Categories)
	assert.Equal(t, []int{2, 2, 0, 0, 0, 0, 1}, weekday.Series)
	assert.Equal(t, "周一", result.PeakWeekday)
}

func TestTimelineEmpty(t *testing.T) {
	result, err := newService(&fakeReader{}, 0).Timeline(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.TotalVideos)
	assert.Len(t, result.Data.Hourly.Series, 24)
	assert.Len(t, result.Data.Weekday.Series, 7)
	assert.NotNil(t, result.Data.Daily.Categories)
	assert.Empty(t, result.Data.Daily.Categories)
	assert.Equal(t, analytics.DateRange{}, result.DateRange)
}

func TestTimelineUsesLocation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	reader := &fakeReader{texts: map[string][]string{
		"videos.published": {"1699365600"},
	}}
	open := func(context.Context) (analytics.Reader, error) { return reader, nil }
	svc := analytics.NewService(open, analytics.Options{Sources: testSources, Location: shanghai})

	result, err := svc.Timeline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, result.PeakHour)
}
