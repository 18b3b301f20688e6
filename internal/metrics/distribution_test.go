package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

func TestAggregateMacros(t *testing.T) {
	items := []domain.FoodItem{
		{Name: "Oats", Quantity: "80g", Calories: 300, Protein: 10, Carbs: 54, Fats: 6},
		{Name: "Eggs", Quantity: "2", Calories: 140, Protein: 12, Carbs: 1, Fats: 10},
	}
	got, err := metrics.AggregateMacros(items)
	require.NoError(t, err)
	assert.Equal(t, metrics.MacroTotals{Calories: 440, Protein: 22, Carbs: 55, Fats: 16}, got)

	empty, err := metrics.AggregateMacros(nil)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestAggregateMacrosRejectsNegative(t *testing.T) {
	_, err := metrics.AggregateMacros([]domain.FoodItem{
		{Name: "Rice", Calories: 200, Carbs: 45},
		{Name: "Bad", Calories: 100, Protein: -1},
	})
	assert.ErrorIs(t, err, metrics.ErrInvalidQuantity)
}

func TestCategoryShares(t *testing.T) {
	got := metrics.CategoryShares([]metrics.CategoryCount{
		{Category: "breakfast", Count: 2},
		{Category: "lunch", Count: 1},
		{Category: "snacks", Count: 0},
		{Category: "breakfast", Count: 1},
	})
	assert.Equal(t, []metrics.CategoryShare{
		{Category: "breakfast", Count: 3, Percent: 75},
		{Category: "lunch", Count: 1, Percent: 25},
	}, got)
}

func TestCategorySharesZeroTotal(t *testing.T) {
	got := metrics.CategoryShares([]metrics.CategoryCount{{Category: "dinner", Count: 0}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, metrics.CategoryShares(nil))
}

func TestCategorySharesSumTo100(t *testing.T) {
	cases := [][]int{
		{1, 1, 1}, {1, 2}, {5, 3, 2}, {7}, {1, 1}, {2, 2, 3},
		{1, 1, 1, 1, 1, 1}, {1, 1, 1, 1, 1, 1, 1}, {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{3, 3, 3, 3, 3, 1, 1, 1, 1}, {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, counts := range cases {
		items := make([]metrics.CategoryCount, len(counts))
		for i, c := range counts {
			items[i] = metrics.CategoryCount{Category: string(rune('a' + i)), Count: c}
		}
		sum := 0
		for _, s := range metrics.CategoryShares(items) {
			sum += s.Percent
		}
		assert.InDelta(t, 100, sum, 1, "counts %v", counts)
	}
}

func TestCategorySharesManyEqualCategories(t *testing.T) {
	shares := func(n int) []int {
		items := make([]metrics.CategoryCount, n)
		for i := range items {
			items[i] = metrics.CategoryCount{Category: string(rune('a' + i)), Count: 1}
		}
		var out []int
		for _, s := range metrics.CategoryShares(items) {
			out = append(out, s.Percent)
		}
		return out
	}

	// 16.67 each rounds to 17; the first share gives a point back
	assert.Equal(t, []int{16, 17, 17, 17, 17, 17}, shares(6))
	// 14.29 each rounds to 14; the first share takes a point
	assert.Equal(t, []int{15, 14, 14, 14, 14, 14, 14}, shares(7))
	// within one point already, left as rounded
	assert.Equal(t, []int{33, 33, 33}, shares(3))
}

func TestMacroSplit(t *testing.T) {
	got := metrics.MacroSplit(metrics.MacroTotals{Protein: 50, Carbs: 100, Fats: 50})
	assert.Equal(t, []metrics.CategoryShare{
		{Category: "protein", Count: 50, Percent: 25},
		{Category: "carbs", Count: 100, Percent: 50},
		{Category: "fats", Count: 50, Percent: 25},
	}, got)
	assert.Empty(t, metrics.MacroSplit(metrics.MacroTotals{Calories: 100}))
}
