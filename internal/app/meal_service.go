package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitmetrics/internal/domain"
	"fitmetrics/internal/metrics"
)

// MealInput is a meal as submitted by a user.
type MealInput struct {
	Date     time.Time
	Week     int
	MealType string
	Foods    []domain.FoodItem
}

// MealTypeTotals are the macro totals of one meal type within a day.
type MealTypeTotals struct {
	MealType string              `json:"mealType"`
	Totals   metrics.MacroTotals `json:"totals"`
}

// DaySummary is everything eaten on one calendar day.
type DaySummary struct {
	Date   string                  `json:"date"`
	Meals  []domain.Meal           `json:"meals"`
	Totals metrics.MacroTotals     `json:"totals"`
	Split  []metrics.CategoryShare `json:"split"`
	ByType []MealTypeTotals        `json:"byType"`
}

// MealService encapsulates meal logging use cases.
type MealService struct {
	repo  domain.MealRepository
	plans *PlanService
}

// NewMealService creates a MealService backed by the given repository.
func NewMealService(repo domain.MealRepository, plans *PlanService) *MealService {
	return &MealService{repo: repo, plans: plans}
}

func (s *MealService) meal(ctx context.Context, userID int64, in MealInput) (domain.Meal, error) {
	if !domain.ValidMealType(in.MealType) {
		return domain.Meal{}, invalid("mealType must be one of %s", strings.Join(domain.MealTypes, ", "))
	}
	if len(in.Foods) == 0 {
		return domain.Meal{}, invalid("at least one food item is required")
	}
	for i, f := range in.Foods {
		if strings.TrimSpace(f.Name) == "" {
			return domain.Meal{}, invalid("food item %d has no name", i+1)
		}
	}
	if _, err := metrics.AggregateMacros(in.Foods); err != nil {
		return domain.Meal{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	date, err := requireDate(in.Date)
	if err != nil {
		return domain.Meal{}, err
	}
	week, err := resolveWeek(ctx, s.plans, userID, date, in.Week)
	if err != nil {
		return domain.Meal{}, err
	}
	return domain.Meal{
		UserID:   userID,
		Date:     date,
		Week:     week,
		MealType: in.MealType,
		Foods:    in.Foods,
	}, nil
}

// Record validates and stores a meal.
func (s *MealService) Record(ctx context.Context, userID int64, in MealInput) (*domain.Meal, error) {
	m, err := s.meal(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = time.Now().UTC()
	id, err := s.repo.AddMeal(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

// Update replaces the type, date and food items of an existing meal.
func (s *MealService) Update(ctx context.Context, userID, id int64, in MealInput) (*domain.Meal, error) {
	m, err := s.meal(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.repo.UpdateMeal(ctx, userID, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a meal.
func (s *MealService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteMeal(ctx, userID, id)
}

// Day summarises the meals logged on date.
func (s *MealService) Day(ctx context.Context, userID int64, date time.Time) (*DaySummary, error) {
	day := domain.Day(date)
	meals, err := s.repo.ListMeals(ctx, userID, domain.DateRange{Start: day, End: day})
	if err != nil {
		return nil, err
	}

	byType := make(map[string]metrics.MacroTotals)
	var total metrics.MacroTotals
	for _, m := range meals {
		t, err := metrics.AggregateMacros(m.Foods)
		if err != nil {
			return nil, fmt.Errorf("meal %d: %w", m.ID, err)
		}
		byType[m.MealType] = byType[m.MealType].Add(t)
		total = total.Add(t)
	}

	out := &DaySummary{
		Date:   day.Format(domain.DayLayout),
		Meals:  meals,
		Totals: total,
		Split:  metrics.MacroSplit(total),
		ByType: []MealTypeTotals{},
	}
	if out.Meals == nil {
		out.Meals = []domain.Meal{}
	}
	for _, mt := range domain.MealTypes {
		if t, ok := byType[mt]; ok {
			out.ByType = append(out.ByType, MealTypeTotals{MealType: mt, Totals: t})
		}
	}
	return out, nil
}

// mealTotals sums the macros of every meal, failing on the first invalid one.
func mealTotals(meals []domain.Meal) (metrics.MacroTotals, error) {
	var total metrics.MacroTotals
	for _, m := range meals {
		t, err := metrics.AggregateMacros(m.Foods)
		if err != nil {
			return metrics.MacroTotals{}, fmt.Errorf("meal %d: %w", m.ID, err)
		}
		total = total.Add(t)
	}
	return total, nil
}
