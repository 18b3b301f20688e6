package metrics

import (
	"time"

	"fitmetrics/internal/domain"
)

// ActivityDay records whether anything was logged on a calendar date.
type ActivityDay struct {
	Date        time.Time `json:"date"`
	HasActivity bool      `json:"hasActivity"`
}

// CurrentStreak counts consecutive active days ending at the most recent
// day of the chronologically ordered series. An inactive most recent day
// yields 0; an inactive day or a gap of more than one day ends the run.
// The series must hold at most one entry per date.
func CurrentStreak(days []ActivityDay) int {
	if len(days) == 0 || !days[len(days)-1].HasActivity {
		return 0
	}
	streak := 1
	prev := days[len(days)-1].Date
	for i := len(days) - 2; i >= 0; i-- {
		d := days[i]
		if !d.HasActivity || domain.DaysBetween(d.Date, prev) != 1 {
			break
		}
		streak++
		prev = d.Date
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days
// anywhere in the series.
func LongestStreak(days []ActivityDay) int {
	longest, run := 0, 0
	var prev time.Time
	for _, d := range days {
		switch {
		case !d.HasActivity:
			run = 0
		case run > 0 && domain.DaysBetween(prev, d.Date) == 1:
			run++
		default:
			run = 1
		}
		prev = d.Date
		longest = max(longest, run)
	}
	return longest
}

// ActivitySeries builds one ActivityDay per calendar date from `from` to
// `to` inclusive, marking a day active when any of dates falls on it.
// Duplicate dates collapse into a single day.
func ActivitySeries(dates []time.Time, from, to time.Time) []ActivityDay {
	active := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		active[domain.Day(d)] = true
	}
	first, last := domain.Day(from), domain.Day(to)
	if last.Before(first) {
		return []ActivityDay{}
	}
	out := make([]ActivityDay, 0, domain.DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, ActivityDay{Date: d, HasActivity: active[d]})
	}
	return out
}
