package app

import (
	"context"
	"slices"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

// MaxDailySteps bounds a single day's count.
const MaxDailySteps = 200000

// StepsInput is a day's step count as submitted by a user. Goal and Week
// may be left at zero to take them from the plan.
type StepsInput struct {
	Date  time.Time
	Week  int
	Count int
	Goal  int
}

// StepsWeek is a weekly bucket of step counts with goal attainment.
type StepsWeek struct {
	metrics.WeekBucket
	GoalsMet    int `json:"goalsMet"`
	DaysTracked int `json:"daysTracked"`
}

// TodaySteps is today's count against the daily goal.
type TodaySteps struct {
	Date     string               `json:"date"`
	Entry    *domain.StepsEntry   `json:"entry"`
	Progress metrics.GoalProgress `json:"progress"`
}

// StepsService encapsulates step-count tracking use cases.
type StepsService struct {
	repo  domain.StepsRepository
	plans *PlanService
}

// NewStepsService creates a StepsService backed by the given repository.
func NewStepsService(repo domain.StepsRepository, plans *PlanService) *StepsService {
	return &StepsService{repo: repo, plans: plans}
}

// Record stores the count for a day, replacing any earlier count for the
// same date.
func (s *StepsService) Record(ctx context.Context, userID int64, in StepsInput) (*domain.StepsEntry, error) {
	if in.Count < 0 || in.Count > MaxDailySteps {
		return nil, invalid("count must be between 0 and %d", MaxDailySteps)
	}
	if in.Goal < 0 {
		return nil, invalid("goal must be >= 0")
	}
	date, err := requireDate(in.Date)
	if err != nil {
		return nil, err
	}
	week, err := resolveWeek(ctx, s.plans, userID, date, in.Week)
	if err != nil {
		return nil, err
	}
	if in.Goal == 0 {
		g, err := s.plans.Goals(ctx, userID)
		if err != nil {
			return nil, err
		}
		in.Goal = g.DailySteps
	}

	e := domain.StepsEntry{
		UserID:    userID,
		Date:      date,
		Week:      week,
		Count:     in.Count,
		Goal:      in.Goal,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.repo.PutSteps(ctx, userID, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return &e, nil
}

// Today returns the count logged for now's calendar date and its progress
// toward the daily goal.
func (s *StepsService) Today(ctx context.Context, userID int64, now time.Time) (*TodaySteps, error) {
	day := domain.Day(now)
	entries, err := s.repo.ListSteps(ctx, userID, domain.DateRange{Start: day, End: day})
	if err != nil {
		return nil, err
	}
	goals, err := s.plans.Goals(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &TodaySteps{Date: day.Format(domain.DayLayout)}
	count, goal := 0, goals.DailySteps
	if len(entries) > 0 {
		e := entries[len(entries)-1]
		out.Entry = &e
		count = e.Count
		if e.Goal > 0 {
			goal = e.Goal
		}
	}
	out.Progress = metrics.NewGoalProgress(float64(count), float64(goal))
	return out, nil
}

// Weekly groups all of the user's step counts by plan week, newest first.
func (s *StepsService) Weekly(ctx context.Context, userID int64) ([]StepsWeek, error) {
	entries, err := s.repo.ListSteps(ctx, userID, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	return stepsWeekly(entries), nil
}

// Delete removes a day's count.
func (s *StepsService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteSteps(ctx, userID, id)
}

// ListRecent returns the most recent counts up to limit, newest first.
func (s *StepsService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.StepsEntry, error) {
	entries, err := s.repo.ListSteps(ctx, userID, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func stepsWeekly(entries []domain.StepsEntry) []StepsWeek {
	points := make([]metrics.DatedMetric, len(entries))
	met := make(map[int]int)
	for i, e := range entries {
		points[i] = metrics.DatedMetric{Date: e.Date, Value: float64(e.Count), Week: e.Week}
		if e.GoalMet() {
			met[e.Week]++
		}
	}

	buckets := metrics.GroupByWeek(points)
	out := make([]StepsWeek, len(buckets))
	for i, b := range buckets {
		out[i] = StepsWeek{WeekBucket: b, GoalsMet: met[b.Week], DaysTracked: b.Count}
	}
	return out
}
