package service

import "time"

var monthLayouts = []string{"2006-01", "2006-01-02"}

// ParseMonth parses a YYYY-MM (or YYYY-MM-DD) string into the first day of
// that month in UTC. Malformed input yields ErrInvalidMonth.
func ParseMonth(s string) (time.Time, error) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), nil
		}
	}
	return time.Time{}, ErrInvalidMonth
}

// MonthStart normalizes a time to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthWindow returns the half-open [start, end) window covering the month
// containing t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t)
	return start, start.AddDate(0, 1, 0)
}
