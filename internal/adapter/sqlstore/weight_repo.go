package sqlstore

import (
	"context"

	"fitmetrics/internal/domain"
)

const weightCols = "id, user_id, date, week, weight, unit, notes, created_at"

func scanWeight(s scanner) (domain.WeightEntry, error) {
	var e domain.WeightEntry
	var date, created string
	if err := s.Scan(&e.ID, &e.UserID, &date, &e.Week, &e.Weight, &e.Unit, &e.Notes, &created); err != nil {
		return e, err
	}
	var err error
	e.Date, e.CreatedAt, err = timestamps(date, created)
	return e, err
}

// AddWeight inserts a new weight entry.
func (d *DB) AddWeight(ctx context.Context, userID int64, e domain.WeightEntry) (int64, error) {
	return d.insert(ctx,
		"INSERT INTO weights(user_id, date, week, weight, unit, notes, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		userID, formatDay(e.Date), e.Week, e.Weight, e.Unit, e.Notes, formatTime(e.CreatedAt),
	)
}

// UpdateWeight replaces the fields of an existing entry.
func (d *DB) UpdateWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	return mustAffect(d.exec(ctx,
		"UPDATE weights SET date = ?, week = ?, weight = ?, unit = ?, notes = ? WHERE id = ? AND user_id = ?",
		formatDay(e.Date), e.Week, e.Weight, e.Unit, e.Notes, e.ID, userID,
	))
}

// DeleteWeight removes an entry.
func (d *DB) DeleteWeight(ctx context.Context, userID, id int64) error {
	return mustAffect(d.exec(ctx, "DELETE FROM weights WHERE id = ? AND user_id = ?", id, userID))
}

// ListWeights returns the entries in r ordered by date.
func (d *DB) ListWeights(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WeightEntry, error) {
	clause, args := where(userID, r)
	rows, err := d.query(ctx, "SELECT "+weightCols+" FROM weights WHERE "+clause+" ORDER BY date, id", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanWeight)
}

// RecentWeights returns the most recent entries up to limit.
func (d *DB) RecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.query(ctx,
		"SELECT "+weightCols+" FROM weights WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanWeight)
}
