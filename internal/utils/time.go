package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD. A time part introduced by 'T' or a space is ignored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(layoutDate) && (s[len(layoutDate)] == 'T' || s[len(layoutDate)] == ' ') {
		s = s[:len(layoutDate)]
	}
	return time.Parse(layoutDate, s)
}

// FormatDate formats the calendar date without shifting time zones.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDate)
}
