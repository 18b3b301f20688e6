package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 3, 31, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		token     string
		wantStart string
	}{
		{"week", "2025-03-25"},
		{"month", "2025-03-02"},
		{"3months", "2025-01-01"},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			r, err := metrics.Resolve(tc.token, now)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, r.Start.Format(domain.DayLayout))
			assert.Equal(t, 0, r.Start.Hour())
			assert.True(t, r.End.Equal(now), "end must be now")
			assert.Equal(t, metrics.Period(tc.token).Days(), domain.DaysBetween(r.Start, r.End)+1)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, token := range []string{"", "year", "Week", "3 months"} {
		_, err := metrics.Resolve(token, time.Now())
		assert.ErrorIs(t, err, metrics.ErrInvalidPeriod, "token %q", token)
	}
}

func TestResolveDateOnlyIncludesToday(t *testing.T) {
	now := time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC)
	r, err := metrics.Resolve("week", now)
	require.NoError(t, err)

	dr := r.DateOnly()
	assert.True(t, dr.Contains(day("2025-03-31")))
	assert.True(t, dr.Contains(day("2025-03-25")))
	assert.False(t, dr.Contains(day("2025-03-24")))
}

func TestWeekIndexAndRange(t *testing.T) {
	start := day("2025-01-01")

	w, err := metrics.WeekIndex(start, day("2025-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 3, w)

	_, err = metrics.WeekIndex(start, day("2024-12-25"))
	assert.ErrorIs(t, err, domain.ErrInvalidWeek)

	r := metrics.WeekRange(start, 3)
	assert.Equal(t, "2025-01-15", r.Start.Format(domain.DayLayout))
	assert.Equal(t, "2025-01-21", r.End.Format(domain.DayLayout))
}
