package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

func TestStepsRecord(t *testing.T) {
	var stored domain.StepsEntry
	repo := &mockStepsRepo{
		putFn: func(_ context.Context, _ int64, e domain.StepsEntry) (int64, error) {
			stored = e
			return 3, nil
		},
	}
	svc := app.NewStepsService(repo, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))

	got, err := svc.Record(context.Background(), 1, app.StepsInput{Date: day("2025-01-09"), Count: 9000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 3 || stored.Goal != 8000 || stored.Week != 2 {
		t.Fatalf("unexpected entry: %+v", stored)
	}
}

func TestStepsRecord_Validation(t *testing.T) {
	svc := app.NewStepsService(&mockStepsRepo{}, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))
	for _, in := range []app.StepsInput{
		{Date: day("2025-01-09"), Count: -1},
		{Date: day("2025-01-09"), Count: app.MaxDailySteps + 1},
		{Date: day("2025-01-09"), Count: 10, Goal: -5},
		{Count: 10},
	} {
		if _, err := svc.Record(context.Background(), 1, in); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestStepsToday(t *testing.T) {
	now := time.Date(2025, 1, 9, 21, 0, 0, 0, time.UTC)
	repo := &mockStepsRepo{
		listFn: func(_ context.Context, _ int64, r domain.DateRange) ([]domain.StepsEntry, error) {
			if !r.Start.Equal(day("2025-01-09")) || !r.End.Equal(day("2025-01-09")) {
				t.Fatalf("unexpected range %+v", r)
			}
			return []domain.StepsEntry{{Date: day("2025-01-09"), Count: 5000, Goal: 10000}}, nil
		},
	}
	svc := app.NewStepsService(repo, app.NewPlanService(&mockPlanRepo{}, defaultGoals))

	got, err := svc.Today(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Date != "2025-01-09" || got.Progress.Percent != 50 || got.Entry == nil {
		t.Fatalf("unexpected today: %+v", got)
	}
}

func TestStepsToday_NothingLogged(t *testing.T) {
	svc := app.NewStepsService(&mockStepsRepo{}, app.NewPlanService(&mockPlanRepo{plan: activePlan()}, defaultGoals))
	got, err := svc.Today(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Entry != nil || got.Progress.Percent != 0 || got.Progress.Goal != 8000 {
		t.Fatalf("unexpected today: %+v", got)
	}
}

func TestStepsWeekly(t *testing.T) {
	repo := &mockStepsRepo{
		listFn: func(_ context.Context, _ int64, _ domain.DateRange) ([]domain.StepsEntry, error) {
			return []domain.StepsEntry{
				{Date: day("2025-01-01"), Week: 1, Count: 12000, Goal: 10000},
				{Date: day("2025-01-02"), Week: 1, Count: 8000, Goal: 10000},
				{Date: day("2025-01-08"), Week: 2, Count: 10000, Goal: 10000},
			}, nil
		},
	}
	svc := app.NewStepsService(repo, app.NewPlanService(&mockPlanRepo{}, defaultGoals))

	weeks, err := svc.Weekly(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	w1 := weeks[1]
	if w1.Week != 1 || w1.Total != 20000 || w1.Avg != 10000 || w1.Max != 12000 || w1.GoalsMet != 1 || w1.DaysTracked != 2 {
		t.Fatalf("unexpected week 1: %+v", w1)
	}
	if weeks[0].GoalsMet != 1 {
		t.Fatalf("expected week 2 goal met, got %+v", weeks[0])
	}
}

func TestStepsListRecent(t *testing.T) {
	repo := &mockStepsRepo{
		listFn: func(_ context.Context, _ int64, _ domain.DateRange) ([]domain.StepsEntry, error) {
			return []domain.StepsEntry{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
	}
	svc := app.NewStepsService(repo, app.NewPlanService(&mockPlanRepo{}, defaultGoals))
	got, err := svc.ListRecent(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected recent: %+v", got)
	}
}
