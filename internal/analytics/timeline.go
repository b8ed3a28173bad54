package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// WeekdayNames are Monday-first chart labels.
var WeekdayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

type Series struct {
	Categories []string `json:"categories"`
	Series     []int    `json:"series"`
}

type TimelineData struct {
	Hourly  Series `json:"hourly"`
	Daily   Series `json:"daily"`
	Weekday Series `json:"weekday"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TimelineResult struct {
	Data        TimelineData `json:"data"`
	TotalVideos int          `json:"total_videos"`
	PeakHour    int          `json:"peak_hour"`
	PeakWeekday string       `json:"peak_weekday"`
	DateRange   DateRange    `json:"date_range"`
	// Skipped counts timestamps that could not be parsed.
	Skipped int `json:"-"`
}

// Timeline buckets publish timestamps by hour of day, calendar day and
// weekday.
func (s *Service) Timeline(ctx context.Context) (*TimelineResult, error) {
	ref := s.sources.PublishTimes

	var raw []string
	err := s.withReader(ctx, func(r Reader) error {
		var err error
		raw, err = r.TextColumn(ctx, ref.Table, ref.Column)
		return err
	})
	if err != nil {
		return nil, err
	}

	var (
		hourly  [24]int
		weekday [7]int
		daily   = make(map[string]int)
		skipped int
		parsed  int
	)
	for _, value := range raw {
		t, ok := parseTimestamp(value, s.location)
		if !ok {
			skipped++
			s.logger.Warn("skipping unparsable timestamp", zap.String("value", value))
			continue
		}
		parsed++
		hourly[t.Hour()]++
		weekday[(int(t.Weekday())+6)%7]++
		daily[t.Format(dayLayout)]++
	}
	s.observer.RecordSkippedTimestamps(skipped)

	labels := WeekdayNames
	result := &TimelineResult{
		Data: TimelineData{
			Hourly:  hourlySeries(hourly),
			Daily:   dailySeries(daily),
			Weekday: Series{Categories: labels[:], Series: weekday[:]},
		},
		TotalVideos: parsed,
		PeakHour:    peakIndex(hourly[:]),
		PeakWeekday: WeekdayNames[peakIndex(weekday[:])],
		Skipped:     skipped,
	}
	if days := result.Data.Daily.Categories; len(days) > 0 {
		result.DateRange = DateRange{Start: days[0], End: days[len(days)-1]}
	}
	return result, nil
}

func hourlySeries(counts [24]int) Series {
	categories := make([]string, len(counts))
	for h := range counts {
		categories[h] = fmt.Sprintf("%02d:00", h)
	}
	return Series{Categories: categories, Series: counts[:]}
}

func dailySeries(counts map[string]int) Series {
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]int, len(days))
	for i, day := range days {
		series[i] = counts[day]
	}
	return Series{Categories: days, Series: series}
}

// peakIndex returns the first index holding the largest count.
func peakIndex(counts []int) int {
	peak := 0
	for i, c := range counts {
		if c > counts[peak] {
			peak = i
		}
	}
	return peak
}
