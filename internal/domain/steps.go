package domain

import (
	"context"
	"time"
)

// StepsEntry is the step count logged for one calendar day together with
// the goal that applied on that day.
type StepsEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Week      int       `json:"week"`
	Count     int       `json:"count"`
	Goal      int       `json:"goal"`
	CreatedAt time.Time `json:"createdAt"`
}

// GoalMet reports whether the day's count reached its goal.
func (e StepsEntry) GoalMet() bool {
	return e.Goal > 0 && e.Count >= e.Goal
}

// StepsRepository is the port for step-count persistence. PutSteps
// replaces any existing entry for the same date.
type StepsRepository interface {
	PutSteps(ctx context.Context, userID int64, e StepsEntry) (int64, error)
	DeleteSteps(ctx context.Context, userID, id int64) error
	ListSteps(ctx context.Context, userID int64, r DateRange) ([]StepsEntry, error)
}
