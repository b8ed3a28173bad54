package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006-01-02",
	"2006/01/02",
}

// parseTimestamp accepts the formats found in exported CSV files: local wall
// clock layouts, unix seconds or milliseconds, and anything cast understands.
func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if isDigits(raw) {
		// Short digit strings are more likely years or ids than epochs.
		if len(raw) < 9 {
			return time.Time{}, false
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		if n > 1e12 {
			return time.UnixMilli(n).In(loc), true
		}
		return time.Unix(n, 0).In(loc), true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}

	t, err := cast.ToTimeInDefaultLocationE(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(loc), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
