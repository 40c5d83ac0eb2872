package model

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 9, 15, 23, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day", time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), 1},
		{"yesterday", time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), -1},
		{"default window", time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC), 30},
		{"far future", time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC), 173598},
		{"far past", time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), -118596},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(today, tc.to); got != tc.want {
				t.Fatalf("DaysBetween() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-09-01 ")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if FormatDate(d) != "2024-09-01" || d.Location() != time.UTC {
		t.Fatalf("unexpected date: %v", d)
	}
	if _, err := ParseDate("09/01/2024"); err == nil {
		t.Fatalf("expect error for a non ISO date")
	}
}
