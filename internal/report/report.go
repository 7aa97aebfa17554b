package report

import (
	"time"

	"timesheet/internal/record"
)

// Row is one rendered day of a month report.
type Row struct {
	Date    record.Date
	Work    record.Interval
	Break   record.Interval
	Worked  time.Duration
	Comment string
	Special bool
}

// Report is one month's records with per-day worked hours and the month
// total, ready for rendering.
type Report struct {
	Year        int
	Month       time.Month
	Owner       string
	Rows        []Row
	TotalWorked time.Duration
}

// Build aggregates one month of records into a report. Worked hours are
// derived here, never read from storage. The records are expected in date
// order, the way Store.Month returns them.
func Build(records []record.Record, year int, month time.Month, owner string) Report {
	rep := Report{
		Year:  year,
		Month: month,
		Owner: owner,
		Rows:  make([]Row, 0, len(records)),
	}
	for _, rec := range records {
		worked := rec.Worked()
		rep.Rows = append(rep.Rows, Row{
			Date:    rec.Date,
			Work:    rec.Work,
			Break:   rec.Break,
			Worked:  worked,
			Comment: rec.Comment,
			Special: rec.Special,
		})
		rep.TotalWorked += worked
	}
	return rep
}
