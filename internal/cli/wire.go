package cli

import (
	"context"
	"fmt"

	adapthttp "fitmetrics/internal/adapter/http"
	"fitmetrics/internal/adapter/memory"
	"fitmetrics/internal/adapter/sqlstore"
	"fitmetrics/internal/app"
	"fitmetrics/internal/config"
	"fitmetrics/internal/domain"
	"fitmetrics/internal/importer"
)

// store is implemented by every storage backend.
type store interface {
	domain.WeightRepository
	domain.StepsRepository
	domain.WorkoutRepository
	domain.MealRepository
	domain.PlanRepository
	domain.UserRepository
}

func openStore(c *config.Config) (store, func() error, error) {
	switch c.Database.Driver {
	case config.DriverPostgres:
		db, err := sqlstore.OpenPostgres(c.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db.Close, nil
	case config.DriverSQLite:
		db, err := sqlstore.OpenSQLite(c.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db.Close, nil
	case config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
}

func buildServices(c *config.Config, st store) adapthttp.Services {
	plans := app.NewPlanService(st, app.Goals{
		DailySteps:     c.Goals.DailySteps,
		WeeklyWorkouts: c.Goals.WeeklyWorkouts,
	})
	im := importer.New(st, plans, importer.Options{
		MaxRows: c.Import.MaxRows,
		Workers: c.Import.Workers,
		Unit:    c.Import.Unit,
	})
	ws := app.NewWeightService(st, plans, im)
	ss := app.NewStepsService(st, plans)
	wo := app.NewWorkoutService(st, plans)
	ms := app.NewMealService(st, plans)
	return adapthttp.Services{
		Weight:    ws,
		Steps:     ss,
		Workouts:  wo,
		Meals:     ms,
		Plans:     plans,
		Analytics: app.NewAnalyticsService(ws, ss, wo, ms, plans),
		Auth:      app.NewAuthService(st, []byte(c.Auth.JWTSecret), c.Auth.TokenTTL),
	}
}

func lookupUser(ctx context.Context, users domain.UserRepository, username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q: %w", username, app.ErrUserNotFound)
	}
	return u, nil
}
