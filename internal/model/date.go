package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a civil date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// CivilDate drops the clock part of t, keeping its calendar day in t's own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a stored date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return CivilDate(t).Format(DateLayout)
}

// DaysBetween returns the whole number of calendar days from "from" to "to".
// It works on Unix seconds because time.Duration overflows past ~292 years.
func DaysBetween(from, to time.Time) int {
	return int((CivilDate(to).Unix() - CivilDate(from).Unix()) / 86400)
}
