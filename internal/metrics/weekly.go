package metrics

import (
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DatedMetric is one logged measurement reduced to what aggregation needs.
type DatedMetric struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Week  int       `json:"week"`
}

// WeekBucket holds the entries of one week and their statistics.
type WeekBucket struct {
	Week    int           `json:"week"`
	Entries []DatedMetric `json:"entries"`
	Avg     float64       `json:"avg"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Total   float64       `json:"total"`
	Count   int           `json:"count"`
	// ChangeFromPrevious is Avg minus the Avg of the nearest earlier week
	// that has entries; nil for the earliest week.
	ChangeFromPrevious *float64 `json:"changeFromPrevious"`
}

// GroupByWeek partitions entries by week and returns one bucket per week
// that has data, newest week first. The input slice is not modified.
func GroupByWeek(entries []DatedMetric) []WeekBucket {
	byWeek := make(map[int][]DatedMetric)
	for _, e := range entries {
		byWeek[e.Week] = append(byWeek[e.Week], e)
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	buckets := make([]WeekBucket, 0, len(weeks))
	var prevAvg *decimal.Decimal
	for _, w := range weeks {
		b, avg := summarize(w, byWeek[w])
		if prevAvg != nil {
			change, _ := avg.Sub(*prevAvg).Float64()
			b.ChangeFromPrevious = &change
		}
		prevAvg = &avg
		buckets = append(buckets, b)
	}

	slices.Reverse(buckets)
	return buckets
}

// Chronological returns buckets ordered oldest week first, for charts.
func Chronological(buckets []WeekBucket) []WeekBucket {
	out := slices.Clone(buckets)
	slices.Reverse(out)
	return out
}

// summarize builds the bucket for one week. The rounded average is also
// returned as a decimal so week-over-week changes carry no float error.
func summarize(week int, entries []DatedMetric) (WeekBucket, decimal.Decimal) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	sum := decimal.Zero
	lo, hi := entries[0].Value, entries[0].Value
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.Value))
		lo = min(lo, e.Value)
		hi = max(hi, e.Value)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(entries)))).Round(1)

	b := WeekBucket{
		Week:    week,
		Entries: entries,
		Min:     lo,
		Max:     hi,
		Count:   len(entries),
	}
	b.Avg, _ = avg.Float64()
	b.Total, _ = sum.Float64()
	return b, avg
}

// RoundTo rounds v half away from zero to the given number of decimal
// places.
func RoundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
