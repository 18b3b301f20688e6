package sqlstore

import (
	"context"

	"fitmetrics/internal/domain"
)

func scanWorkout(s scanner) (domain.WorkoutEntry, error) {
	var e domain.WorkoutEntry
	var date, created string
	if err := s.Scan(&e.ID, &e.UserID, &date, &e.Week, &e.Type, &e.DurationMinutes, &e.CaloriesBurned, &e.Notes, &created); err != nil {
		return e, err
	}
	var err error
	e.Date, e.CreatedAt, err = timestamps(date, created)
	return e, err
}

// AddWorkout inserts a workout.
func (d *DB) AddWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) (int64, error) {
	return d.insert(ctx,
		"INSERT INTO workouts(user_id, date, week, type, duration_minutes, calories_burned, notes, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		userID, formatDay(e.Date), e.Week, e.Type, e.DurationMinutes, e.CaloriesBurned, e.Notes, formatTime(e.CreatedAt),
	)
}

// UpdateWorkout replaces the fields of an existing workout.
func (d *DB) UpdateWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) error {
	return mustAffect(d.exec(ctx,
		"UPDATE workouts SET date = ?, week = ?, type = ?, duration_minutes = ?, calories_burned = ?, notes = ? WHERE id = ? AND user_id = ?",
		formatDay(e.Date), e.Week, e.Type, e.DurationMinutes, e.CaloriesBurned, e.Notes, e.ID, userID,
	))
}

// DeleteWorkout removes a workout.
func (d *DB) DeleteWorkout(ctx context.Context, userID, id int64) error {
	return mustAffect(d.exec(ctx, "DELETE FROM workouts WHERE id = ? AND user_id = ?", id, userID))
}

// ListWorkouts returns the workouts in r ordered by date.
func (d *DB) ListWorkouts(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
	clause, args := where(userID, r)
	rows, err := d.query(ctx,
		"SELECT id, user_id, date, week, type, duration_minutes, calories_burned, notes, created_at FROM workouts WHERE "+clause+" ORDER BY date, id", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanWorkout)
}
