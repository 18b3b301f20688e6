package app_test

import (
	"context"
	"errors"
	"testing"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

func TestWorkoutRecord(t *testing.T) {
	svc := app.NewWorkoutService(&mockWorkoutRepo{}, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))

	got, err := svc.Record(context.Background(), 1, app.WorkoutInput{
		Date: day("2025-01-03"), Type: " Running ", DurationMinutes: 45, CaloriesBurned: 400,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != "running" || got.Week != 1 {
		t.Fatalf("unexpected workout: %+v", got)
	}

	bad := []app.WorkoutInput{
		{Date: day("2025-01-03"), DurationMinutes: 45},
		{Date: day("2025-01-03"), Type: "yoga"},
		{Date: day("2025-01-03"), Type: "yoga", DurationMinutes: 30, CaloriesBurned: -1},
	}
	for _, in := range bad {
		if _, err := svc.Record(context.Background(), 1, in); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestWorkoutThisWeek_PlanWeek(t *testing.T) {
	repo := &mockWorkoutRepo{
		listFn: func(_ context.Context, _ int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
			if !r.Start.Equal(day("2025-01-15")) || !r.End.Equal(day("2025-01-21")) {
				t.Fatalf("expected plan week 3 range, got %v - %v", r.Start, r.End)
			}
			return []domain.WorkoutEntry{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := app.NewWorkoutService(repo, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))

	gp, err := svc.ThisWeek(context.Background(), 1, day("2025-01-16"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gp.Current != 2 || gp.Goal != 3 || gp.Percent != 67 {
		t.Fatalf("unexpected progress: %+v", gp)
	}
}

func TestWorkoutThisWeek_NoPlan(t *testing.T) {
	repo := &mockWorkoutRepo{
		listFn: func(_ context.Context, _ int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
			if !r.Start.Equal(day("2025-01-10")) || !r.End.Equal(day("2025-01-16")) {
				t.Fatalf("expected last seven days, got %v - %v", r.Start, r.End)
			}
			return make([]domain.WorkoutEntry, 5), nil
		},
	}
	svc := app.NewWorkoutService(repo, app.NewPlanService(&mockPlanRepo{}, defaultGoals))

	gp, err := svc.ThisWeek(context.Background(), 1, day("2025-01-16"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gp.Percent != 100 || gp.Goal != 4 {
		t.Fatalf("unexpected progress: %+v", gp)
	}
}

func TestWorkoutUpdate(t *testing.T) {
	var saved domain.WorkoutEntry
	repo := &mockWorkoutRepo{
		updateFn: func(_ context.Context, _ int64, e domain.WorkoutEntry) error {
			saved = e
			return nil
		},
	}
	svc := app.NewWorkoutService(repo, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))

	got, err := svc.Update(context.Background(), 1, 4, app.WorkoutInput{
		Date: day("2025-01-15"), Type: "Cycling", DurationMinutes: 60, CaloriesBurned: 550,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 4 || got.Week != 3 || saved.Type != "cycling" || saved.DurationMinutes != 60 {
		t.Fatalf("unexpected workout: got %+v, saved %+v", got, saved)
	}

	if _, err := svc.Update(context.Background(), 1, 4, app.WorkoutInput{Date: day("2025-01-15"), Type: "yoga"}); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
