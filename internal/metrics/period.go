// Package metrics is the aggregation engine: pure functions that turn raw,
// irregularly timed entries into weekly summaries, goal progress, streaks
// and category distributions. Nothing in this package keeps state between
// calls.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"fitmetrics/internal/domain"
)

// ErrInvalidPeriod is returned for an unrecognised period token.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a named relative date window.
type Period string

// Recognised periods.
const (
	PeriodWeek        Period = "week"
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "3months"
)

var periodDays = map[Period]int{
	PeriodWeek:        7,
	PeriodMonth:       30,
	PeriodThreeMonths: 90,
}

// Days returns the window length of p, or 0 if p is not recognised.
func (p Period) Days() int {
	return periodDays[p]
}

// Resolve maps a period token to the last N days inclusive of now. Start is
// the beginning of the first calendar day of the window; End is now.
func Resolve(token string, now time.Time) (domain.DateRange, error) {
	n, ok := periodDays[Period(token)]
	if !ok {
		return domain.DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}
	y, m, d := now.AddDate(0, 0, -(n - 1)).Date()
	return domain.DateRange{
		Start: time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		End:   now,
	}, nil
}

// WeekIndex returns the 1-based week of date relative to start.
func WeekIndex(start, date time.Time) (int, error) {
	days := domain.DaysBetween(start, date)
	if days < 0 {
		return 0, fmt.Errorf("%w: date precedes start", domain.ErrInvalidWeek)
	}
	return days/7 + 1, nil
}

// WeekRange returns the seven calendar days covered by week relative to
// start.
func WeekRange(start time.Time, week int) domain.DateRange {
	first := domain.Day(start).AddDate(0, 0, (week-1)*7)
	return domain.DateRange{Start: first, End: first.AddDate(0, 0, 6)}
}
