package sqlstore

import (
	"context"

	"fitmetrics/internal/domain"
)

func scanSteps(s scanner) (domain.StepsEntry, error) {
	var e domain.StepsEntry
	var date, created string
	if err := s.Scan(&e.ID, &e.UserID, &date, &e.Week, &e.Count, &e.Goal, &created); err != nil {
		return e, err
	}
	var err error
	e.Date, e.CreatedAt, err = timestamps(date, created)
	return e, err
}

// PutSteps stores the count for a day, replacing any existing one.
func (d *DB) PutSteps(ctx context.Context, userID int64, e domain.StepsEntry) (int64, error) {
	return d.insert(ctx,
		"INSERT INTO steps(user_id, date, week, steps, goal, created_at) VALUES(?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(user_id, date) DO UPDATE SET week = excluded.week, steps = excluded.steps, goal = excluded.goal, created_at = excluded.created_at",
		userID, formatDay(e.Date), e.Week, e.Count, e.Goal, formatTime(e.CreatedAt),
	)
}

// DeleteSteps removes a day's count.
func (d *DB) DeleteSteps(ctx context.Context, userID, id int64) error {
	return mustAffect(d.exec(ctx, "DELETE FROM steps WHERE id = ? AND user_id = ?", id, userID))
}

// ListSteps returns the counts in r ordered by date.
func (d *DB) ListSteps(ctx context.Context, userID int64, r domain.DateRange) ([]domain.StepsEntry, error) {
	clause, args := where(userID, r)
	rows, err := d.query(ctx,
		"SELECT id, user_id, date, week, steps, goal, created_at FROM steps WHERE "+clause+" ORDER BY date", args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSteps)
}
