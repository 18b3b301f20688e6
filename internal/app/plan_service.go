package app

import (
	"context"
	"fmt"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

// MaxPlanWeeks bounds NumberOfWeeks.
const MaxPlanWeeks = 104

// Goals are the daily step and weekly workout targets in effect for a user.
type Goals struct {
	DailySteps     int `json:"dailySteps"`
	WeeklyWorkouts int `json:"weeklyWorkouts"`
}

// PlanInput holds the user-editable fields of a plan. TargetWeight is in
// kilograms.
type PlanInput struct {
	StartDate         time.Time
	NumberOfWeeks     int
	TargetWeight      *float64
	DailyStepsGoal    int
	WeeklyWorkoutGoal int
}

// PlanProgress reports how far into its plan a user is.
type PlanProgress struct {
	Plan        *domain.Plan         `json:"plan"`
	CurrentWeek int                  `json:"currentWeek"`
	TotalWeeks  int                  `json:"totalWeeks"`
	Progress    metrics.GoalProgress `json:"progress"`
}

// PlanService manages a user's fitness plan and the goals derived from it.
type PlanService struct {
	repo     domain.PlanRepository
	defaults Goals
}

// NewPlanService creates a PlanService. defaults apply to users without a
// plan and to plan goals left at zero.
func NewPlanService(repo domain.PlanRepository, defaults Goals) *PlanService {
	return &PlanService{repo: repo, defaults: defaults}
}

// Create validates in and stores it as the user's active plan, replacing
// any previous plan.
func (s *PlanService) Create(ctx context.Context, userID int64, in PlanInput) (*domain.Plan, error) {
	start, err := requireDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	if in.NumberOfWeeks < 1 || in.NumberOfWeeks > MaxPlanWeeks {
		return nil, invalid("numberOfWeeks must be between 1 and %d", MaxPlanWeeks)
	}
	if in.TargetWeight != nil {
		if err := validateWeight(*in.TargetWeight, domain.UnitKg); err != nil {
			return nil, err
		}
	}
	if in.DailyStepsGoal < 0 || in.WeeklyWorkoutGoal < 0 {
		return nil, invalid("goals must be >= 0")
	}

	p := domain.Plan{
		UserID:            userID,
		StartDate:         start,
		NumberOfWeeks:     in.NumberOfWeeks,
		TargetWeight:      in.TargetWeight,
		DailyStepsGoal:    in.DailyStepsGoal,
		WeeklyWorkoutGoal: in.WeeklyWorkoutGoal,
		Status:            domain.PlanActive,
		CreatedAt:         time.Now().UTC(),
	}
	if p.DailyStepsGoal == 0 {
		p.DailyStepsGoal = s.defaults.DailySteps
	}
	if p.WeeklyWorkoutGoal == 0 {
		p.WeeklyWorkoutGoal = s.defaults.WeeklyWorkouts
	}

	id, err := s.repo.SavePlan(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

// Active returns the user's plan, whatever its status.
func (s *PlanService) Active(ctx context.Context, userID int64) (*domain.Plan, error) {
	p, err := s.repo.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNoPlan
	}
	return p, nil
}

// Pause suspends an active plan.
func (s *PlanService) Pause(ctx context.Context, userID int64) (*domain.Plan, error) {
	return s.transition(ctx, userID, domain.PlanActive, domain.PlanPaused)
}

// Resume reactivates a paused plan.
func (s *PlanService) Resume(ctx context.Context, userID int64) (*domain.Plan, error) {
	return s.transition(ctx, userID, domain.PlanPaused, domain.PlanActive)
}

func (s *PlanService) transition(ctx context.Context, userID int64, from, to string) (*domain.Plan, error) {
	p, err := s.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status != from {
		return nil, invalid("plan is %s, not %s", p.Status, from)
	}
	if err := s.repo.SetPlanStatus(ctx, userID, to); err != nil {
		return nil, err
	}
	p.Status = to
	return p, nil
}

// Delete removes the user's plan.
func (s *PlanService) Delete(ctx context.Context, userID int64) error {
	return s.repo.DeletePlan(ctx, userID)
}

// Progress reports the plan week for now against the plan length. An
// active plan whose last week has passed is marked completed.
func (s *PlanService) Progress(ctx context.Context, userID int64, now time.Time) (*PlanProgress, error) {
	p, err := s.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PlanActive && domain.Day(now).After(p.EndDate()) {
		if err := s.repo.SetPlanStatus(ctx, userID, domain.PlanCompleted); err != nil {
			return nil, fmt.Errorf("complete plan: %w", err)
		}
		p.Status = domain.PlanCompleted
	}
	week := p.CurrentWeek(now)
	return &PlanProgress{
		Plan:        p,
		CurrentWeek: week,
		TotalWeeks:  p.NumberOfWeeks,
		Progress:    metrics.NewGoalProgress(float64(week), float64(p.NumberOfWeeks)),
	}, nil
}

// WeekFor returns the plan week containing date.
func (s *PlanService) WeekFor(ctx context.Context, userID int64, date time.Time) (int, error) {
	p, err := s.Active(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.WeekFor(date)
}

// Goals returns the goals of the user's plan, or the defaults without one.
func (s *PlanService) Goals(ctx context.Context, userID int64) (Goals, error) {
	p, err := s.repo.GetPlan(ctx, userID)
	if err != nil {
		return Goals{}, err
	}
	g := s.defaults
	if p != nil {
		if p.DailyStepsGoal > 0 {
			g.DailySteps = p.DailyStepsGoal
		}
		if p.WeeklyWorkoutGoal > 0 {
			g.WeeklyWorkouts = p.WeeklyWorkoutGoal
		}
	}
	return g, nil
}
