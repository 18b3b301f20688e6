package metrics

import "math"

// GoalProgress is a value measured against a goal.
type GoalProgress struct {
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
	Percent int     `json:"percent"`
}

// Progress returns current as a whole percentage of goal, clamped to
// [0, 100]. A goal that is zero, negative or not finite yields 0. Every
// ratio shown to users goes through this function so that rounding and
// clamping are the same everywhere.
func Progress(current, goal float64) int {
	if goal <= 0 || math.IsInf(goal, 0) || math.IsNaN(goal) || math.IsNaN(current) {
		return 0
	}
	pct := math.Round(current / goal * 100)
	switch {
	case pct > 100:
		return 100
	case pct < 0:
		return 0
	}
	return int(pct)
}

// NewGoalProgress bundles current, goal and their Progress.
func NewGoalProgress(current, goal float64) GoalProgress {
	return GoalProgress{Current: current, Goal: goal, Percent: Progress(current, goal)}
}
