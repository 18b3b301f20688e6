package domain

import (
	"context"
	"time"
)

// Accepted body-weight bounds, in kilograms.
const (
	MinWeightKg = 20.0
	MaxWeightKg = 500.0
)

// WeightEntry represents a single weight measurement.
type WeightEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	Week      int       `json:"week"`
	Weight    float64   `json:"weight"`
	Unit      string    `json:"unit"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Kilograms returns the entry's weight in kg.
func (e WeightEntry) Kilograms() float64 {
	return ConvertWeight(e.Weight, e.Unit, UnitKg)
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeight(ctx context.Context, userID int64, e WeightEntry) (int64, error)
	UpdateWeight(ctx context.Context, userID int64, e WeightEntry) error
	DeleteWeight(ctx context.Context, userID, id int64) error
	ListWeights(ctx context.Context, userID int64, r DateRange) ([]WeightEntry, error)
	RecentWeights(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
}
