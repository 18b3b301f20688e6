package app

import (
	"context"
	"strings"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

// WorkoutInput is a training session as submitted by a user.
type WorkoutInput struct {
	Date            time.Time
	Week            int
	Type            string
	DurationMinutes int
	CaloriesBurned  int
	Notes           string
}

// WorkoutService encapsulates workout logging use cases.
type WorkoutService struct {
	repo  domain.WorkoutRepository
	plans *PlanService
}

// NewWorkoutService creates a WorkoutService backed by the given repository.
func NewWorkoutService(repo domain.WorkoutRepository, plans *PlanService) *WorkoutService {
	return &WorkoutService{repo: repo, plans: plans}
}

func (s *WorkoutService) entry(ctx context.Context, userID int64, in WorkoutInput) (domain.WorkoutEntry, error) {
	typ := strings.ToLower(strings.TrimSpace(in.Type))
	if typ == "" {
		return domain.WorkoutEntry{}, invalid("type is required")
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes > 24*60 {
		return domain.WorkoutEntry{}, invalid("duration must be between 1 and 1440 minutes")
	}
	if in.CaloriesBurned < 0 {
		return domain.WorkoutEntry{}, invalid("caloriesBurned must be >= 0")
	}
	date, err := requireDate(in.Date)
	if err != nil {
		return domain.WorkoutEntry{}, err
	}
	week, err := resolveWeek(ctx, s.plans, userID, date, in.Week)
	if err != nil {
		return domain.WorkoutEntry{}, err
	}
	return domain.WorkoutEntry{
		UserID:          userID,
		Date:            date,
		Week:            week,
		Type:            typ,
		DurationMinutes: in.DurationMinutes,
		CaloriesBurned:  in.CaloriesBurned,
		Notes:           in.Notes,
	}, nil
}

// Record validates and stores a workout.
func (s *WorkoutService) Record(ctx context.Context, userID int64, in WorkoutInput) (*domain.WorkoutEntry, error) {
	e, err := s.entry(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = time.Now().UTC()
	id, err := s.repo.AddWorkout(ctx, userID, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return &e, nil
}

// Update replaces the fields of an existing workout.
func (s *WorkoutService) Update(ctx context.Context, userID, id int64, in WorkoutInput) (*domain.WorkoutEntry, error) {
	e, err := s.entry(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.repo.UpdateWorkout(ctx, userID, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes a workout.
func (s *WorkoutService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteWorkout(ctx, userID, id)
}

// List returns the workouts within r, oldest first.
func (s *WorkoutService) List(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
	return s.repo.ListWorkouts(ctx, userID, r)
}

// ThisWeek counts the workouts of the current week against the weekly goal.
// The current week is the plan week containing now, or the last seven days
// without an active plan.
func (s *WorkoutService) ThisWeek(ctx context.Context, userID int64, now time.Time) (metrics.GoalProgress, error) {
	r, err := s.currentWeek(ctx, userID, now)
	if err != nil {
		return metrics.GoalProgress{}, err
	}
	entries, err := s.repo.ListWorkouts(ctx, userID, r)
	if err != nil {
		return metrics.GoalProgress{}, err
	}
	goals, err := s.plans.Goals(ctx, userID)
	if err != nil {
		return metrics.GoalProgress{}, err
	}
	return metrics.NewGoalProgress(float64(len(entries)), float64(goals.WeeklyWorkouts)), nil
}

func (s *WorkoutService) currentWeek(ctx context.Context, userID int64, now time.Time) (domain.DateRange, error) {
	p, err := s.plans.repo.GetPlan(ctx, userID)
	if err != nil {
		return domain.DateRange{}, err
	}
	if p != nil && p.Status == domain.PlanActive {
		if w, err := p.WeekFor(now); err == nil {
			return metrics.WeekRange(p.StartDate, w), nil
		}
	}
	r, err := metrics.Resolve(string(metrics.PeriodWeek), now)
	if err != nil {
		return domain.DateRange{}, err
	}
	return r.DateOnly(), nil
}
