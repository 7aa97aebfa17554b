package stats

import (
	"sort"
	"time"

	"timesheet/internal/record"
)

// Summary contains aggregated figures for a set of records.
type Summary struct {
	RecordCount   int
	WorkingDays   int
	SpecialDays   int
	TotalWorked   time.Duration
	AveragePerDay time.Duration
	LongestDay    record.Date
	LongestWorked time.Duration
}

// WeekdayBreakdown contains the accumulated work time for a single weekday.
type WeekdayBreakdown struct {
	Weekday     time.Weekday
	TotalWorked time.Duration
	RecordCount int
}

// Calculate computes summary figures for the given records. Special
// records count as days off: they raise the record count but contribute
// no worked time and do not lower the average.
func Calculate(records []record.Record) Summary {
	summary := Summary{}

	if len(records) == 0 {
		return summary
	}

	for _, rec := range records {
		summary.RecordCount++

		if rec.Special {
			summary.SpecialDays++
			continue
		}

		worked := rec.Worked()
		summary.WorkingDays++
		summary.TotalWorked += worked

		if worked > summary.LongestWorked {
			summary.LongestWorked = worked
			summary.LongestDay = rec.Date
		}
	}

	// Average over working days only.
	if summary.WorkingDays > 0 {
		summary.AveragePerDay = summary.TotalWorked / time.Duration(summary.WorkingDays)
	}

	return summary
}

// CalculateWeekdayBreakdown groups records by weekday and returns the
// breakdown sorted by total worked time descending. Special records are
// excluded. Weekdays with equal totals sort in calendar order.
func CalculateWeekdayBreakdown(records []record.Record) []WeekdayBreakdown {
	if len(records) == 0 {
		return []WeekdayBreakdown{}
	}

	weekdayMap := make(map[time.Weekday]*WeekdayBreakdown)

	for _, rec := range records {
		if rec.Special {
			continue
		}

		weekday := rec.Date.Weekday()
		if _, exists := weekdayMap[weekday]; !exists {
			weekdayMap[weekday] = &WeekdayBreakdown{Weekday: weekday}
		}
		weekdayMap[weekday].TotalWorked += rec.Worked()
		weekdayMap[weekday].RecordCount++
	}

	breakdowns := make([]WeekdayBreakdown, 0, len(weekdayMap))
	for _, breakdown := range weekdayMap {
		breakdowns = append(breakdowns, *breakdown)
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalWorked != breakdowns[j].TotalWorked {
			return breakdowns[i].TotalWorked > breakdowns[j].TotalWorked
		}
		return breakdowns[i].Weekday < breakdowns[j].Weekday
	})

	return breakdowns
}
