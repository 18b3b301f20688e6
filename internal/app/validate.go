package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fitmetrics/internal/domain"
)

// ErrInvalidInput wraps every validation failure raised by the services.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validateWeight checks that v is a finite weight in unit whose kilogram
// equivalent lies within the accepted bounds.
func validateWeight(v float64, unit string) error {
	if !domain.ValidUnit(unit) {
		return invalid("unit must be %q or %q", domain.UnitKg, domain.UnitLb)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalid("weight must be > 0")
	}
	kg := domain.ConvertWeight(v, unit, domain.UnitKg)
	if kg < domain.MinWeightKg || kg > domain.MaxWeightKg {
		return invalid("weight must be between %g and %g kg", domain.MinWeightKg, domain.MaxWeightKg)
	}
	return nil
}

// resolveWeek returns week when the caller supplied one, or derives it from
// the user's plan.
func resolveWeek(ctx context.Context, plans *PlanService, userID int64, date time.Time, week int) (int, error) {
	if week < 0 {
		return 0, invalid("week must be a positive integer")
	}
	if week > 0 {
		return week, nil
	}
	w, err := plans.WeekFor(ctx, userID, date)
	if errors.Is(err, domain.ErrNoPlan) {
		return 0, fmt.Errorf("%w: week is required without a plan: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidWeek) {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return w, err
}

func requireDate(d time.Time) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, invalid("date is required")
	}
	return domain.Day(d), nil
}
