package schedule

import (
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// NormalizeDate truncates a full ISO timestamp to its date portion.
// Source data sometimes carries "2024-06-01T10:00:00.000Z" where a
// plain date is expected; comparing that against "2024-06-01" would
// silently never match.
func NormalizeDate(date string) string {
	if i := strings.IndexAny(date, "T "); i >= 0 {
		return date[:i]
	}
	return date
}

// ParseDate parses a normalized YYYY-MM-DD string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, NormalizeDate(date))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}

// ValidClock reports whether s is a zero-padded 24h HH:mm string.
func ValidClock(s string) bool {
	_, ok := minuteOfClock(s)
	return ok
}

// minuteOfClock converts "HH:mm" to minutes since midnight. Only the
// zero-padded form is accepted: "9:00" would never string-match a
// generated slot, so it is rejected up front.
func minuteOfClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
