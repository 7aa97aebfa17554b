package timeutil

import (
	"fmt"
	"time"
)

// MonthStart returns midnight UTC on the first day of the given month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last nanosecond of the last day of the given month.
// Stepping to the first day of the next month handles the different month
// lengths (28, 29, 30, 31 days).
func MonthEnd(year int, month time.Month) time.Time {
	return MonthStart(year, month).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// MonthOf returns the year/month pair containing t.
func MonthOf(t time.Time) (int, time.Month) {
	return t.Year(), t.Month()
}

// PrevMonth steps a year/month pair one month back, crossing year
// boundaries as needed.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := MonthStart(year, month).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// NextMonth steps a year/month pair one month forward.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := MonthStart(year, month).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// MonthLabel renders the heading form used by reports, e.g. "March 2023".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}
