package helpers

import (
	"fmt"
	"strconv"
	"time"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// Accepted timestamp layouts for event form input: RFC3339 from API clients
// and the datetime-local format browsers submit.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// ParseDate parses a bare date, used for admin date-range drill-down bounds.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
