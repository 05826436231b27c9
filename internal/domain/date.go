package domain

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	// MaxRangeDays is the largest allowed distance between range start and end.
	MaxRangeDays = 366
)

// DateOf returns the calendar date of t (in t's location) as midnight UTC.
// Log dates are always stored in this form so that equality is well defined.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates start <= end and a span of at most MaxRangeDays.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return DateRange{}, NewValidationError("to", "end date must not be before start date")
	}
	if days := int(end.Sub(start).Hours() / 24); days > MaxRangeDays {
		return DateRange{}, NewValidationError("to", fmt.Sprintf("date range must not exceed %d days", MaxRangeDays))
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns every calendar day in the range, start and end included.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether date lies within the range.
func (r DateRange) Contains(date time.Time) bool {
	date = DateOf(date)
	return !date.Before(r.Start) && !date.After(r.End)
}
