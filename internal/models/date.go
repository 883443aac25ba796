package models

import "time"

const DateLayout = "2006-01-02"

// DateOnly truncates a timestamp to its UTC calendar date. All per-day keys
// (PresenceRecord.Date, RegisterDay.Date) are stored this way so lookups by
// date compare equal regardless of the time-of-day of the input.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
