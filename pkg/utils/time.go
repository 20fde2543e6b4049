package utils

import (
	"regexp"
	"time"
)

// localDatePattern is the wire format for local dates. Zero-padded
// only; "2024-2-10" is rejected.
var localDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseLocalDate parses a YYYY-MM-DD string into a UTC midnight
// instant. The format check is strict before parsing so that Go's
// lenient date normalization never accepts a malformed string.
func ParseLocalDate(s string) (time.Time, bool) {
	if !localDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UTCMidnight truncates an instant to its UTC calendar day.
func UTCMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysApart returns the absolute difference in calendar days between
// two instants at UTC midnight granularity.
func DaysApart(a, b time.Time) int {
	diff := int(UTCMidnight(a).Sub(UTCMidnight(b)).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
