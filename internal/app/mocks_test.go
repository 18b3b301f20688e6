package app_test

import (
	"context"
	"time"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

type mockWeightRepo struct {
	addFn    func(ctx context.Context, userID int64, e domain.WeightEntry) (int64, error)
	updateFn func(ctx context.Context, userID int64, e domain.WeightEntry) error
	deleteFn func(ctx context.Context, userID, id int64) error
	listFn   func(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WeightEntry, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeight(ctx context.Context, userID int64, e domain.WeightEntry) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, e)
	}
	return 1, nil
}

func (m *mockWeightRepo) UpdateWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, e)
	}
	return nil
}

func (m *mockWeightRepo) DeleteWeight(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockWeightRepo) ListWeights(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, r)
	}
	return nil, nil
}

func (m *mockWeightRepo) RecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockStepsRepo struct {
	putFn    func(ctx context.Context, userID int64, e domain.StepsEntry) (int64, error)
	deleteFn func(ctx context.Context, userID, id int64) error
	listFn   func(ctx context.Context, userID int64, r domain.DateRange) ([]domain.StepsEntry, error)
}

func (m *mockStepsRepo) PutSteps(ctx context.Context, userID int64, e domain.StepsEntry) (int64, error) {
	if m.putFn != nil {
		return m.putFn(ctx, userID, e)
	}
	return 1, nil
}

func (m *mockStepsRepo) DeleteSteps(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockStepsRepo) ListSteps(ctx context.Context, userID int64, r domain.DateRange) ([]domain.StepsEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, r)
	}
	return nil, nil
}

type mockWorkoutRepo struct {
	addFn    func(ctx context.Context, userID int64, e domain.WorkoutEntry) (int64, error)
	updateFn func(ctx context.Context, userID int64, e domain.WorkoutEntry) error
	deleteFn func(ctx context.Context, userID, id int64) error
	listFn   func(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WorkoutEntry, error)
}

func (m *mockWorkoutRepo) AddWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, e)
	}
	return 1, nil
}

func (m *mockWorkoutRepo) UpdateWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, e)
	}
	return nil
}

func (m *mockWorkoutRepo) DeleteWorkout(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockWorkoutRepo) ListWorkouts(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, r)
	}
	return nil, nil
}

type mockMealRepo struct {
	addFn    func(ctx context.Context, userID int64, m domain.Meal) (int64, error)
	updateFn func(ctx context.Context, userID int64, m domain.Meal) error
	deleteFn func(ctx context.Context, userID, id int64) error
	listFn   func(ctx context.Context, userID int64, r domain.DateRange) ([]domain.Meal, error)
}

func (m *mockMealRepo) AddMeal(ctx context.Context, userID int64, meal domain.Meal) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, meal)
	}
	return 1, nil
}

func (m *mockMealRepo) UpdateMeal(ctx context.Context, userID int64, meal domain.Meal) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, meal)
	}
	return nil
}

func (m *mockMealRepo) DeleteMeal(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockMealRepo) ListMeals(ctx context.Context, userID int64, r domain.DateRange) ([]domain.Meal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, r)
	}
	return nil, nil
}

type mockPlanRepo struct {
	plan     *domain.Plan
	getFn    func(ctx context.Context, userID int64) (*domain.Plan, error)
	saveFn   func(ctx context.Context, userID int64, p domain.Plan) (int64, error)
	statuses []string
}

func (m *mockPlanRepo) GetPlan(ctx context.Context, userID int64) (*domain.Plan, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	if m.plan == nil {
		return nil, nil
	}
	p := *m.plan
	return &p, nil
}

func (m *mockPlanRepo) SavePlan(ctx context.Context, userID int64, p domain.Plan) (int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, p)
	}
	p.ID = 7
	m.plan = &p
	return p.ID, nil
}

func (m *mockPlanRepo) SetPlanStatus(_ context.Context, _ int64, status string) error {
	m.statuses = append(m.statuses, status)
	if m.plan != nil {
		m.plan.Status = status
	}
	return nil
}

func (m *mockPlanRepo) DeletePlan(_ context.Context, _ int64) error {
	m.plan = nil
	return nil
}

var defaultGoals = app.Goals{DailySteps: 10000, WeeklyWorkouts: 4}

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// activePlan starts on 2025-01-01 and runs 12 weeks.
func activePlan() *domain.Plan {
	target := 70.0
	return &domain.Plan{
		ID:                7,
		UserID:            1,
		StartDate:         day("2025-01-01"),
		NumberOfWeeks:     12,
		TargetWeight:      &target,
		DailyStepsGoal:    8000,
		WeeklyWorkoutGoal: 3,
		Status:            domain.PlanActive,
	}
}
