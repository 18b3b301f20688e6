package domain_test

import (
	"errors"
	"testing"
	"time"

	"fitmetrics/internal/domain"
)

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPlanWeekFor(t *testing.T) {
	p := domain.Plan{StartDate: day("2025-01-01"), NumberOfWeeks: 12}

	tests := []struct {
		date string
		want int
	}{
		{"2025-01-01", 1},
		{"2025-01-07", 1},
		{"2025-01-08", 2},
		{"2025-03-25", 12},
		{"2025-04-01", 13},
		{"2025-04-08", 14},
	}
	for _, tc := range tests {
		got, err := p.WeekFor(day(tc.date))
		if err != nil {
			t.Fatalf("WeekFor(%s): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("WeekFor(%s) = %d; want %d", tc.date, got, tc.want)
		}
	}

	if _, err := p.WeekFor(day("2024-12-31")); !errors.Is(err, domain.ErrInvalidWeek) {
		t.Errorf("expected ErrInvalidWeek before start, got %v", err)
	}
}

func TestPlanCurrentWeekAndEndDate(t *testing.T) {
	p := domain.Plan{StartDate: day("2025-01-01"), NumberOfWeeks: 4}

	if got := p.EndDate().Format(domain.DayLayout); got != "2025-01-28" {
		t.Errorf("EndDate() = %s; want 2025-01-28", got)
	}
	if got := p.CurrentWeek(day("2024-12-01")); got != 1 {
		t.Errorf("CurrentWeek before start = %d; want 1", got)
	}
	if got := p.CurrentWeek(day("2025-01-16")); got != 3 {
		t.Errorf("CurrentWeek = %d; want 3", got)
	}
	if got := p.CurrentWeek(day("2025-06-01")); got != 4 {
		t.Errorf("CurrentWeek after end = %d; want 4", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := domain.DateRange{
		Start: day("2025-01-01"),
		End:   time.Date(2025, 1, 7, 15, 30, 0, 0, time.UTC),
	}
	if !r.Contains(day("2025-01-07")) {
		t.Error("expected range to contain its end date")
	}
	if r.Contains(day("2025-01-08")) {
		t.Error("expected range to exclude the following day")
	}
	if !(domain.DateRange{}).Contains(day("1999-01-01")) {
		t.Error("zero range should contain everything")
	}
	if got := r.DateOnly().End; !got.Equal(day("2025-01-07")) {
		t.Errorf("DateOnly().End = %v", got)
	}
}
