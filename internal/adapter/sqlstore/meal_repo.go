package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"fitmetrics/internal/domain"
)

func scanMeal(s scanner) (domain.Meal, error) {
	var m domain.Meal
	var date, foods, created string
	if err := s.Scan(&m.ID, &m.UserID, &date, &m.Week, &m.MealType, &foods, &created); err != nil {
		return m, err
	}
	if err := json.Unmarshal([]byte(foods), &m.Foods); err != nil {
		return m, fmt.Errorf("meal %d: decode foods: %w", m.ID, err)
	}
	var err error
	m.Date, m.CreatedAt, err = timestamps(date, created)
	return m, err
}

// AddMeal inserts a meal. Food items are stored as a JSON array.
func (d *DB) AddMeal(ctx context.Context, userID int64, m domain.Meal) (int64, error) {
	foods, err := json.Marshal(m.Foods)
	if err != nil {
		return 0, err
	}
	return d.insert(ctx,
		"INSERT INTO meals(user_id, date, week, meal_type, foods, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		userID, formatDay(m.Date), m.Week, m.MealType, string(foods), formatTime(m.CreatedAt),
	)
}

// UpdateMeal replaces the fields and food items of an existing meal.
func (d *DB) UpdateMeal(ctx context.Context, userID int64, m domain.Meal) error {
	foods, err := json.Marshal(m.Foods)
	if err != nil {
		return err
	}
	return mustAffect(d.exec(ctx,
		"UPDATE meals SET date = ?, week = ?, meal_type = ?, foods = ? WHERE id = ? AND user_id = ?",
		formatDay(m.Date), m.Week, m.MealType, string(foods), m.ID, userID,
	))
}

// DeleteMeal removes a meal.
func (d *DB) DeleteMeal(ctx context.Context, userID, id int64) error {
	return mustAffect(d.exec(ctx, "DELETE FROM meals WHERE id = ? AND user_id = ?", id, userID))
}

// ListMeals returns the meals in r ordered by date.
func (d *DB) ListMeals(ctx context.Context, userID int64, r domain.DateRange) ([]domain.Meal, error) {
	clause, args := where(userID, r)
	rows, err := d.query(ctx,
		"SELECT id, user_id, date, week, meal_type, foods, created_at FROM meals WHERE "+clause+" ORDER BY date, id", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMeal)
}
