package domain

import (
	"context"
	"fmt"
	"time"
)

// Plan statuses.
const (
	PlanActive    = "active"
	PlanPaused    = "paused"
	PlanCompleted = "completed"
)

// Plan is a user's fixed-length fitness plan. Week 1 starts on StartDate.
type Plan struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	StartDate         time.Time `json:"startDate"`
	NumberOfWeeks     int       `json:"numberOfWeeks"`
	TargetWeight      *float64  `json:"targetWeight,omitempty"`
	DailyStepsGoal    int       `json:"dailyStepsGoal"`
	WeeklyWorkoutGoal int       `json:"weeklyWorkoutGoal"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// EndDate is the last day of the plan's final week.
func (p Plan) EndDate() time.Time {
	return Day(p.StartDate).AddDate(0, 0, p.NumberOfWeeks*7-1)
}

// WeekFor returns the 1-based plan week containing date. Dates before the
// start are rejected; dates after the final week keep counting so that late
// entries still group into their own weeks.
func (p Plan) WeekFor(date time.Time) (int, error) {
	days := DaysBetween(p.StartDate, date)
	if days < 0 {
		return 0, fmt.Errorf("%w: %s is before plan start %s", ErrInvalidWeek,
			Day(date).Format(DayLayout), Day(p.StartDate).Format(DayLayout))
	}
	return days/7 + 1, nil
}

// CurrentWeek returns the plan week for now, clamped to [1, NumberOfWeeks].
func (p Plan) CurrentWeek(now time.Time) int {
	w, err := p.WeekFor(now)
	if err != nil || w < 1 {
		return 1
	}
	if w > p.NumberOfWeeks {
		return p.NumberOfWeeks
	}
	return w
}

// PlanRepository is the port for plan persistence. A user has at most one
// plan; GetPlan returns (nil, nil) when there is none.
type PlanRepository interface {
	GetPlan(ctx context.Context, userID int64) (*Plan, error)
	SavePlan(ctx context.Context, userID int64, p Plan) (int64, error)
	SetPlanStatus(ctx context.Context, userID int64, status string) error
	DeletePlan(ctx context.Context, userID int64) error
}
