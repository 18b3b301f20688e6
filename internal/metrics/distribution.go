package metrics

import (
	"errors"
	"fmt"
	"math"

	"fitmetrics/internal/domain"
)

// ErrInvalidQuantity is returned when a food item carries a negative value.
var ErrInvalidQuantity = errors.New("invalid quantity")

// MacroTotals are summed nutrient values.
type MacroTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// Add returns the field-wise sum of t and o.
func (t MacroTotals) Add(o MacroTotals) MacroTotals {
	return MacroTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fats:     t.Fats + o.Fats,
	}
}

// AggregateMacros sums the nutrient fields of items. Any negative value
// fails the whole call.
func AggregateMacros(items []domain.FoodItem) (MacroTotals, error) {
	var t MacroTotals
	for i, it := range items {
		if it.Calories < 0 || it.Protein < 0 || it.Carbs < 0 || it.Fats < 0 {
			return MacroTotals{}, fmt.Errorf("%w: item %d (%q) has a negative value", ErrInvalidQuantity, i+1, it.Name)
		}
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fats += it.Fats
	}
	return t, nil
}

// CategoryCount is a count attributed to a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryShare is a category's whole-percent share of the total.
type CategoryShare struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// CategoryShares merges counts per category and returns each category's
// percentage of the total, in first-appearance order. Categories whose
// merged count is not positive are omitted; a zero total yields an empty
// slice. Each percent is the rounded share; when rounding pushes the sum
// more than one point away from 100, the shares that rounded furthest are
// moved back one point each until it is within one.
func CategoryShares(items []CategoryCount) []CategoryShare {
	order := make([]string, 0, len(items))
	counts := make(map[string]int, len(items))
	for _, it := range items {
		if _, seen := counts[it.Category]; !seen {
			order = append(order, it.Category)
		}
		counts[it.Category] += it.Count
	}

	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	out := make([]CategoryShare, 0, len(order))
	if total == 0 {
		return out
	}
	exact := make([]float64, 0, len(order))
	sum := 0
	for _, cat := range order {
		c := counts[cat]
		if c <= 0 {
			continue
		}
		e := float64(c) / float64(total) * 100
		p := int(math.Round(e))
		exact = append(exact, e)
		sum += p
		out = append(out, CategoryShare{Category: cat, Count: c, Percent: p})
	}

	for ; sum > 101; sum-- {
		out[furthest(out, exact, 1)].Percent--
	}
	for ; sum < 99; sum++ {
		out[furthest(out, exact, -1)].Percent++
	}
	return out
}

// furthest returns the first share whose rounding error in direction dir
// (1 for rounded up, -1 for rounded down) is largest.
func furthest(shares []CategoryShare, exact []float64, dir float64) int {
	best, bestErr := 0, math.Inf(-1)
	for i, s := range shares {
		if e := (float64(s.Percent) - exact[i]) * dir; e > bestErr {
			best, bestErr = i, e
		}
	}
	return best
}

// MacroSplit returns the gram distribution of protein, carbs and fats.
func MacroSplit(t MacroTotals) []CategoryShare {
	return CategoryShares([]CategoryCount{
		{Category: "protein", Count: t.Protein},
		{Category: "carbs", Count: t.Carbs},
		{Category: "fats", Count: t.Fats},
	})
}
