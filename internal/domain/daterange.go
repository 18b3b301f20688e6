package domain

import "time"

// DayLayout is the calendar date format used across storage and the API.
const DayLayout = "2006-01-02"

// DateRange is an inclusive time window. The zero value means "no bound",
// i.e. all records for a user.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range is unbounded.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range, inclusive at both ends.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// DateOnly returns the range with both ends truncated to calendar dates, for
// comparisons against entries that carry no time of day.
func (r DateRange) DateOnly() DateRange {
	out := r
	if !r.Start.IsZero() {
		out.Start = Day(r.Start)
	}
	if !r.End.IsZero() {
		out.End = Day(r.End)
	}
	return out
}

// Day truncates t to midnight UTC of its calendar date in t's location.
// Entry dates are stored in this form so that comparisons and day
// arithmetic are independent of time zones and DST.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a Day value.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
