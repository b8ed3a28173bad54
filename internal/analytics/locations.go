package analytics

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// UnknownLocation marks rows without a usable place name.
const UnknownLocation = "未知"

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type LocationResult struct {
	Data  []NameValue `json:"data"`
	Total int         `json:"total"`
}

// Locations reads the location table by column position: the first column is
// the place name and the second its count.
func (s *Service) Locations(ctx context.Context) (*LocationResult, error) {
	var rows [][]string
	err := s.withReader(ctx, func(r Reader) error {
		var err error
		rows, err = r.Rows(ctx, s.sources.LocationTable)
		return err
	})
	if err != nil {
		return nil, err
	}

	data := make([]NameValue, 0, len(rows))
	total := 0
	for _, row := range rows {
		name, count := locationRow(row)
		if name == UnknownLocation {
			continue
		}
		data = append(data, NameValue{Name: name, Value: count})
		total += count
	}

	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Value > data[j].Value
	})

	s.logger.Debug("locations aggregated", zap.Int("rows", len(rows)), zap.Int("kept", len(data)))

	return &LocationResult{Data: data, Total: total}, nil
}

func locationRow(row []string) (string, int) {
	name := UnknownLocation
	if len(row) > 0 && row[0] != "" {
		name = row[0]
	}

	count := 0
	if len(row) > 1 {
		// Unparsable counts fall back to 0.
		if n, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil {
			count = n
		}
	}
	return name, count
}
