package app

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

// AnalyticsService computes period-scoped statistics across every kind of
// logged entry.
type AnalyticsService struct {
	weight   *WeightService
	steps    *StepsService
	workouts *WorkoutService
	meals    *MealService
	plans    *PlanService
}

// NewAnalyticsService creates an AnalyticsService reading through the given
// services.
func NewAnalyticsService(ws *WeightService, ss *StepsService, wo *WorkoutService, ms *MealService, ps *PlanService) *AnalyticsService {
	return &AnalyticsService{weight: ws, steps: ss, workouts: wo, meals: ms, plans: ps}
}

// Window describes the resolved period of an analytics response.
type Window struct {
	Period string `json:"period"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func resolveWindow(period string, now time.Time) (Window, domain.DateRange, error) {
	r, err := metrics.Resolve(period, now)
	if err != nil {
		return Window{}, domain.DateRange{}, err
	}
	dr := r.DateOnly()
	return Window{
		Period: period,
		From:   dr.Start.Format(domain.DayLayout),
		To:     dr.End.Format(domain.DayLayout),
	}, dr, nil
}

// WeightSummary describes the measurements of a period.
type WeightSummary struct {
	Start       float64 `json:"start"`
	Current     float64 `json:"current"`
	TotalChange float64 `json:"totalChange"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Avg         float64 `json:"avg"`
}

// TargetProgress is the distance covered toward the plan's target weight
// since the plan started.
type TargetProgress struct {
	Target    float64              `json:"target"`
	Remaining float64              `json:"remaining"`
	Progress  metrics.GoalProgress `json:"progress"`
}

// WeightAnalytics is the weight report of a period.
type WeightAnalytics struct {
	Window
	Unit    string               `json:"unit"`
	Entries []domain.WeightEntry `json:"entries"`
	Weekly  []metrics.WeekBucket `json:"weekly"`
	Chart   []metrics.WeekBucket `json:"chart"`
	Summary *WeightSummary       `json:"summary"`
	Target  *TargetProgress      `json:"target"`
}

// Weight reports the measurements of period in unit.
func (s *AnalyticsService) Weight(ctx context.Context, userID int64, period, unit string, now time.Time) (*WeightAnalytics, error) {
	if !domain.ValidUnit(unit) {
		return nil, invalid("unit must be %q or %q", domain.UnitKg, domain.UnitLb)
	}
	win, dr, err := resolveWindow(period, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.weight.repo.ListWeights(ctx, userID, dr)
	if err != nil {
		return nil, err
	}

	points := weightMetrics(entries, unit)
	converted := make([]domain.WeightEntry, len(entries))
	for i, e := range entries {
		e.Weight = points[i].Value
		e.Unit = unit
		converted[i] = e
	}
	weekly := metrics.GroupByWeek(points)
	out := &WeightAnalytics{
		Window:  win,
		Unit:    unit,
		Entries: converted,
		Weekly:  weekly,
		Chart:   metrics.Chronological(weekly),
	}

	if len(points) > 0 {
		sum := 0.0
		lo, hi := points[0].Value, points[0].Value
		for _, p := range points {
			sum += p.Value
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
		first, last := points[0].Value, points[len(points)-1].Value
		out.Summary = &WeightSummary{
			Start:       first,
			Current:     last,
			TotalChange: metrics.RoundTo(last-first, 1),
			Min:         lo,
			Max:         hi,
			Avg:         metrics.RoundTo(sum/float64(len(points)), 1),
		}
	}

	out.Target, err = s.targetProgress(ctx, userID, unit)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AnalyticsService) targetProgress(ctx context.Context, userID int64, unit string) (*TargetProgress, error) {
	p, err := s.plans.repo.GetPlan(ctx, userID)
	if err != nil || p == nil || p.TargetWeight == nil {
		return nil, err
	}
	since, err := s.weight.repo.ListWeights(ctx, userID, domain.DateRange{Start: domain.Day(p.StartDate)})
	if err != nil || len(since) == 0 {
		return nil, err
	}

	start, current, target := since[0].Kilograms(), since[len(since)-1].Kilograms(), *p.TargetWeight
	need, done := target-start, current-start
	if need < 0 {
		need, done = -need, -done
	}
	conv := func(kg float64) float64 {
		return metrics.RoundTo(domain.ConvertWeight(kg, domain.UnitKg, unit), 1)
	}
	return &TargetProgress{
		Target:    conv(target),
		Remaining: conv(math.Abs(target - current)),
		Progress:  metrics.NewGoalProgress(conv(done), conv(need)),
	}, nil
}

// DailySteps is one logged day in a steps report.
type DailySteps struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Goal    int    `json:"goal"`
	GoalMet bool   `json:"goalMet"`
}

// StepsAnalytics is the steps report of a period.
type StepsAnalytics struct {
	Window
	Daily       []DailySteps         `json:"daily"`
	Total       int                  `json:"total"`
	Average     int                  `json:"average"`
	GoalsMet    int                  `json:"goalsMet"`
	DaysTracked int                  `json:"daysTracked"`
	Goal        metrics.GoalProgress `json:"goal"`
	Weekly      []StepsWeek          `json:"weekly"`
}

// Steps reports the step counts of period.
func (s *AnalyticsService) Steps(ctx context.Context, userID int64, period string, now time.Time) (*StepsAnalytics, error) {
	win, dr, err := resolveWindow(period, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.steps.repo.ListSteps(ctx, userID, dr)
	if err != nil {
		return nil, err
	}
	goals, err := s.plans.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &StepsAnalytics{
		Window:      win,
		Daily:       make([]DailySteps, 0, len(entries)),
		DaysTracked: len(entries),
		Weekly:      stepsWeekly(entries),
	}
	for _, e := range entries {
		out.Daily = append(out.Daily, DailySteps{
			Date:    e.Date.Format(domain.DayLayout),
			Count:   e.Count,
			Goal:    e.Goal,
			GoalMet: e.GoalMet(),
		})
		out.Total += e.Count
		if e.GoalMet() {
			out.GoalsMet++
		}
	}
	if len(entries) > 0 {
		out.Average = int(math.Round(float64(out.Total) / float64(len(entries))))
	}
	out.Goal = metrics.NewGoalProgress(float64(out.Average), float64(goals.DailySteps))
	return out, nil
}

// WorkoutAnalytics is the workout report of a period.
type WorkoutAnalytics struct {
	Window
	Entries       []domain.WorkoutEntry   `json:"entries"`
	Count         int                     `json:"count"`
	TotalDuration int                     `json:"totalDuration"`
	TotalCalories int                     `json:"totalCalories"`
	ByType        []metrics.CategoryShare `json:"byType"`
	Weekly        []metrics.WeekBucket    `json:"weekly"`
}

// Workouts reports the workouts of period. Weekly buckets hold minutes
// trained per workout.
func (s *AnalyticsService) Workouts(ctx context.Context, userID int64, period string, now time.Time) (*WorkoutAnalytics, error) {
	win, dr, err := resolveWindow(period, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.workouts.repo.ListWorkouts(ctx, userID, dr)
	if err != nil {
		return nil, err
	}

	out := &WorkoutAnalytics{Window: win, Entries: entries, Count: len(entries)}
	if out.Entries == nil {
		out.Entries = []domain.WorkoutEntry{}
	}
	types := make([]metrics.CategoryCount, 0, len(entries))
	points := make([]metrics.DatedMetric, 0, len(entries))
	for _, e := range entries {
		out.TotalDuration += e.DurationMinutes
		out.TotalCalories += e.CaloriesBurned
		types = append(types, metrics.CategoryCount{Category: e.Type, Count: 1})
		points = append(points, metrics.DatedMetric{Date: e.Date, Value: float64(e.DurationMinutes), Week: e.Week})
	}
	out.ByType = metrics.CategoryShares(types)
	out.Weekly = metrics.GroupByWeek(points)
	return out, nil
}

// DailyMacros are the macro totals of one day.
type DailyMacros struct {
	Date   string              `json:"date"`
	Totals metrics.MacroTotals `json:"totals"`
}

// MealAnalytics is the nutrition report of a period.
type MealAnalytics struct {
	Window
	Daily           []DailyMacros           `json:"daily"`
	Totals          metrics.MacroTotals     `json:"totals"`
	AverageCalories int                     `json:"averageCalories"`
	Split           []metrics.CategoryShare `json:"split"`
	ByType          []metrics.CategoryShare `json:"byType"`
}

// Meals reports the meals of period.
func (s *AnalyticsService) Meals(ctx context.Context, userID int64, period string, now time.Time) (*MealAnalytics, error) {
	win, dr, err := resolveWindow(period, now)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.repo.ListMeals(ctx, userID, dr)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]domain.Meal)
	var days []string
	types := make([]metrics.CategoryCount, 0, len(domain.MealTypes))
	for _, mt := range domain.MealTypes {
		types = append(types, metrics.CategoryCount{Category: mt})
	}
	for _, m := range meals {
		d := m.Date.Format(domain.DayLayout)
		if _, ok := byDay[d]; !ok {
			days = append(days, d)
		}
		byDay[d] = append(byDay[d], m)
		types = append(types, metrics.CategoryCount{Category: m.MealType, Count: 1})
	}
	sort.Strings(days)

	out := &MealAnalytics{Window: win, Daily: make([]DailyMacros, 0, len(days))}
	for _, d := range days {
		t, err := mealTotals(byDay[d])
		if err != nil {
			return nil, err
		}
		out.Daily = append(out.Daily, DailyMacros{Date: d, Totals: t})
		out.Totals = out.Totals.Add(t)
	}
	if len(days) > 0 {
		out.AverageCalories = int(math.Round(float64(out.Totals.Calories) / float64(len(days))))
	}
	out.Split = metrics.MacroSplit(out.Totals)
	out.ByType = metrics.CategoryShares(types)
	return out, nil
}

// Streak is the run of consecutive days with any logged activity.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Overview is the dashboard summary for today.
type Overview struct {
	Date           string               `json:"date"`
	TodaySteps     metrics.GoalProgress `json:"todaySteps"`
	WeeklyWorkouts metrics.GoalProgress `json:"weeklyWorkouts"`
	LatestWeight   *domain.WeightEntry  `json:"latestWeight"`
	Plan           *PlanProgress        `json:"plan"`
	Streak         Streak               `json:"streak"`
}

// Overview summarises today's progress, the plan and the activity streak.
func (s *AnalyticsService) Overview(ctx context.Context, userID int64, now time.Time) (*Overview, error) {
	out := &Overview{Date: domain.Day(now).Format(domain.DayLayout)}

	today, err := s.steps.Today(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	out.TodaySteps = today.Progress

	if out.WeeklyWorkouts, err = s.workouts.ThisWeek(ctx, userID, now); err != nil {
		return nil, err
	}

	recent, err := s.weight.repo.RecentWeights(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(recent) > 0 {
		out.LatestWeight = &recent[0]
	}

	out.Plan, err = s.plans.Progress(ctx, userID, now)
	if errors.Is(err, domain.ErrNoPlan) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	dates, err := s.activityDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(dates) > 0 {
		first := dates[0]
		for _, d := range dates {
			if d.Before(first) {
				first = d
			}
		}
		series := metrics.ActivitySeries(dates, first, now)
		out.Streak = Streak{
			Current: metrics.CurrentStreak(series),
			Longest: metrics.LongestStreak(series),
		}
	}
	return out, nil
}

// activityDates collects the date of every logged entry of any kind. Step
// entries with a zero count do not count as activity.
func (s *AnalyticsService) activityDates(ctx context.Context, userID int64) ([]time.Time, error) {
	all := domain.DateRange{}
	var dates []time.Time

	weights, err := s.weight.repo.ListWeights(ctx, userID, all)
	if err != nil {
		return nil, err
	}
	for _, e := range weights {
		dates = append(dates, e.Date)
	}

	steps, err := s.steps.repo.ListSteps(ctx, userID, all)
	if err != nil {
		return nil, err
	}
	for _, e := range steps {
		if e.Count > 0 {
			dates = append(dates, e.Date)
		}
	}

	workouts, err := s.workouts.repo.ListWorkouts(ctx, userID, all)
	if err != nil {
		return nil, err
	}
	for _, e := range workouts {
		dates = append(dates, e.Date)
	}

	meals, err := s.meals.repo.ListMeals(ctx, userID, all)
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		dates = append(dates, m.Date)
	}
	return dates, nil
}
