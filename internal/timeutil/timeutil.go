// Package timeutil provides the calendar math behind weekly reporting:
// Monday week buckets, day/week shifts, and human-readable week ranges.
// All functions work on ISO dates (YYYY-MM-DD) interpreted at local midnight.
package timeutil

import (
	"fmt"
	"time"
)

// DayFormat is the ISO calendar date layout used throughout the store.
const DayFormat = "2006-01-02"

// Unit selects the granularity of RecentOptions.
type Unit string

const (
	UnitDays  Unit = "days"
	UnitWeeks Unit = "weeks"
)

// Option pairs a selectable ISO date value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ParseDay parses an ISO date at local midnight. It is the validation
// entry point for dates crossing the tool boundary; the remaining helpers
// tolerate malformed input instead of returning errors.
func ParseDay(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return t, nil
}

// Today returns the current local date as an ISO string.
func Today() string {
	return time.Now().Format(DayFormat)
}

// WeekMonday returns the Monday on or before date. Sunday belongs to the
// week that started six days earlier. Malformed dates pass through unchanged.
func WeekMonday(date string) string {
	t, err := ParseDay(date)
	if err != nil {
		return date
	}
	offset := int(t.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday
	}
	return t.AddDate(0, 0, -offset).Format(DayFormat)
}

// ShiftDays adds n calendar days (negative to go back), rolling over month
// and year boundaries. Malformed dates pass through unchanged.
func ShiftDays(date string, n int) string {
	t, err := ParseDay(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DayFormat)
}

// ShiftWeeks adds n whole weeks. Malformed dates pass through unchanged.
func ShiftWeeks(date string, n int) string {
	return ShiftDays(date, 7*n)
}

// FormatRange renders the seven-day span starting at weekStart, e.g.
// "Jan 6 - Jan 12, 2025" or "Dec 30, 2024 - Jan 5, 2025" across a year
// boundary. Returns "" for malformed input.
func FormatRange(weekStart string) string {
	start, err := ParseDay(weekStart)
	if err != nil {
		return ""
	}
	end := start.AddDate(0, 0, 6)
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// IsFuture reports whether date is strictly after today at local midnight.
// Today itself is never future. Malformed dates are never future.
func IsFuture(date string) bool {
	t, err := ParseDay(date)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return t.After(today)
}

// RecentOptions returns count selectable values walking backward from today
// (or from this week's Monday for UnitWeeks), most recent first.
func RecentOptions(count int, unit Unit) []Option {
	return RecentOptionsFrom(Today(), count, unit)
}

// RecentOptionsFrom is RecentOptions anchored at an explicit date, which
// keeps the sequence deterministic for callers that supply the reference day.
func RecentOptionsFrom(today string, count int, unit Unit) []Option {
	if count <= 0 {
		return nil
	}
	options := make([]Option, 0, count)
	switch unit {
	case UnitWeeks:
		monday := WeekMonday(today)
		for i := 0; i < count; i++ {
			value := ShiftWeeks(monday, -i)
			options = append(options, Option{Value: value, Label: FormatRange(value)})
		}
	default:
		for i := 0; i < count; i++ {
			value := ShiftDays(today, -i)
			options = append(options, Option{Value: value, Label: formatDay(value)})
		}
	}
	return options
}

func formatDay(date string) string {
	t, err := ParseDay(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
