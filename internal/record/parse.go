package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// intervalPattern matches the HH:MM-HH:MM wire format (e.g. "08:00-16:30").
// Hour values are range-checked by ParseClock afterwards.
var intervalPattern = regexp.MustCompile(`^(\d{1,2}:\d{2})-(\d{1,2}:\d{2})$`)

// ParseDate parses the user-facing DD.MM.YYYY form. Day and month must be
// zero-padded to two digits and the date must exist on the calendar.
func ParseDate(input string) (Date, error) {
	s := strings.TrimSpace(input)
	t, err := time.ParseInLocation(InputDateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a DD.MM.YYYY date", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// ParseKey parses the ISO-8601 storage form produced by Date.Key.
func ParseKey(input string) (Date, error) {
	t, err := time.ParseInLocation(storeDateLayout, input, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, input)
	}
	return DateOf(t), nil
}

// ParseClock parses a single HH:MM time of day.
func ParseClock(input string) (Clock, error) {
	s := strings.TrimSpace(input)
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a HH:MM time", ErrInvalidInterval, s)
	}
	return NewClock(t.Hour(), t.Minute()), nil
}

// ParseInterval parses the HH:MM-HH:MM wire form of a work or break
// interval. Ordering of the endpoints is left to Record.Validate.
func ParseInterval(input string) (Interval, error) {
	s := strings.TrimSpace(input)
	matches := intervalPattern.FindStringSubmatch(s)
	if matches == nil {
		return Interval{}, fmt.Errorf("%w: %q is not two HH:MM times joined by '-'", ErrInvalidInterval, s)
	}
	start, err := ParseClock(matches[1])
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(matches[2])
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
