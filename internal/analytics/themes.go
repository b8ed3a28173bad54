package analytics

import (
	"context"
	"sort"
)

type ValueRange struct {
	Max int `json:"max"`
	Min int `json:"min"`
}

type ThemeResult struct {
	Data        []NameValue `json:"data"`
	TotalThemes int         `json:"total_themes"`
	TotalCount  int         `json:"total_count"`
	TopTheme    string      `json:"top_theme"`
	ThemeRange  ValueRange  `json:"theme_range"`
}

// Themes counts rows per theme name, most common first. Equal counts keep the
// order in which the themes first appear.
func (s *Service) Themes(ctx context.Context) (*ThemeResult, error) {
	ref := s.sources.Themes

	result := &ThemeResult{Data: []NameValue{}}
	err := s.withReader(ctx, func(r Reader) error {
		groups, err := r.GroupCounts(ctx, ref.Table, ref.Column)
		if err != nil {
			return err
		}
		for _, g := range groups {
			result.Data = append(result.Data, NameValue{Name: g.Name, Value: g.Count})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result.Data, func(i, j int) bool {
		return result.Data[i].Value > result.Data[j].Value
	})

	result.TotalThemes = len(result.Data)
	for _, d := range result.Data {
		result.TotalCount += d.Value
	}
	if n := len(result.Data); n > 0 {
		result.TopTheme = result.Data[0].Name
		result.ThemeRange = ValueRange{Max: result.Data[0].Value, Min: result.Data[n-1].Value}
	}
	return result, nil
}
