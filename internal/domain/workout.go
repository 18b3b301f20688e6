package domain

import (
	"context"
	"time"
)

// WorkoutEntry is one logged training session.
type WorkoutEntry struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Date            time.Time `json:"date"`
	Week            int       `json:"week"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// WorkoutRepository is the port for workout persistence.
type WorkoutRepository interface {
	AddWorkout(ctx context.Context, userID int64, e WorkoutEntry) (int64, error)
	UpdateWorkout(ctx context.Context, userID int64, e WorkoutEntry) error
	DeleteWorkout(ctx context.Context, userID, id int64) error
	ListWorkouts(ctx context.Context, userID int64, r DateRange) ([]WorkoutEntry, error)
}
