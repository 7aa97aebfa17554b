package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Wire formats. Dates are entered as DD.MM.YYYY and persisted as ISO-8601;
// clock times use HH:MM in both directions.
const (
	InputDateLayout = "02.01.2006"
	storeDateLayout = "2006-01-02"
	clockLayout     = "15:04"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidInterval = errors.New("invalid time interval")
	ErrInvalidRecord   = errors.New("invalid record")
)

// Date is a calendar date at day precision, normalized to midnight UTC so
// two values naming the same day compare equal.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// String renders the user-facing DD.MM.YYYY form.
func (d Date) String() string {
	return d.Format(InputDateLayout)
}

// Key returns the ISO-8601 form used as the storage key. Later dates sort
// lexicographically after earlier ones, so string order is date order.
func (d Date) Key() string {
	return d.Format(storeDateLayout)
}

// In reports whether the date falls within the given month.
func (d Date) In(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.ParseInLocation(storeDateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	d.Time = t
	return nil
}

// Clock is a time of day counted in minutes since midnight.
type Clock int

// NewClock returns the Clock for hour:minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String renders the HH:MM form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Interval is a start/end pair of clock times within a single day.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// IsZero reports whether both endpoints are zero, the sentinel for "no
// interval" carried by special records and skipped breaks.
func (iv Interval) IsZero() bool {
	return iv.Start == 0 && iv.End == 0
}

// Duration returns the span from start to end.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.End-iv.Start) * time.Minute
}

// String renders the HH:MM-HH:MM wire form.
func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Record is one calendar day's work-hour entry. A special record (holiday,
// sick day) carries only the date and comment; both intervals stay zeroed.
type Record struct {
	Date    Date     `json:"date"`
	Work    Interval `json:"work"`
	Break   Interval `json:"break"`
	Comment string   `json:"comment,omitempty"`
	Special bool     `json:"special,omitempty"`
}

// Worked returns the derived work duration: the work interval minus the
// break interval. Computed on demand, never stored. Special records work
// zero hours.
func (r Record) Worked() time.Duration {
	if r.Special {
		return 0
	}
	return r.Work.Duration() - r.Break.Duration()
}

// Validate checks the interval invariants. Only interval ordering is
// checked; the break may fall outside the work hours.
func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is not set", ErrInvalidRecord)
	}
	if r.Special {
		if !r.Work.IsZero() || !r.Break.IsZero() {
			return fmt.Errorf("%w: special records carry no time intervals", ErrInvalidRecord)
		}
		return nil
	}
	if r.Work.End <= r.Work.Start {
		return fmt.Errorf("%w: work hours %s must end after they begin", ErrInvalidRecord, r.Work)
	}
	if !r.Break.IsZero() && r.Break.End <= r.Break.Start {
		return fmt.Errorf("%w: break time %s must end after it begins", ErrInvalidRecord, r.Break)
	}
	return nil
}

// FormatDuration renders d in the compact form used by reports and stats,
// e.g. "7h30m", "45m", "0h". Negative durations keep their sign.
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	hours := minutes / 60
	minutes = minutes % 60
	switch {
	case hours == 0 && minutes == 0:
		return "0h"
	case hours == 0:
		return fmt.Sprintf("%s%dm", sign, minutes)
	case minutes == 0:
		return fmt.Sprintf("%s%dh", sign, hours)
	default:
		return fmt.Sprintf("%s%dh%dm", sign, hours, minutes)
	}
}
