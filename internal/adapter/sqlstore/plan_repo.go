package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"fitmetrics/internal/domain"
)

// GetPlan returns the user's plan, or nil if there is none.
func (d *DB) GetPlan(ctx context.Context, userID int64) (*domain.Plan, error) {
	var p domain.Plan
	var start, created string
	var target sql.NullFloat64
	err := d.queryRow(ctx,
		"SELECT id, user_id, start_date, weeks, target_weight, daily_steps_goal, weekly_workout_goal, status, created_at FROM plans WHERE user_id = ?",
		userID,
	).Scan(&p.ID, &p.UserID, &start, &p.NumberOfWeeks, &target, &p.DailyStepsGoal, &p.WeeklyWorkoutGoal, &p.Status, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if target.Valid {
		p.TargetWeight = &target.Float64
	}
	p.StartDate, p.CreatedAt, err = timestamps(start, created)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePlan replaces the user's plan with p.
func (d *DB) SavePlan(ctx context.Context, userID int64, p domain.Plan) (int64, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, d.rebind("DELETE FROM plans WHERE user_id = ?"), userID); err != nil {
		return 0, err
	}
	var target sql.NullFloat64
	if p.TargetWeight != nil {
		target = sql.NullFloat64{Float64: *p.TargetWeight, Valid: true}
	}
	var id int64
	err = tx.QueryRowContext(ctx, d.rebind(
		"INSERT INTO plans(user_id, start_date, weeks, target_weight, daily_steps_goal, weekly_workout_goal, status, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?) RETURNING id"),
		userID, formatDay(p.StartDate), p.NumberOfWeeks, target, p.DailyStepsGoal, p.WeeklyWorkoutGoal, p.Status, formatTime(p.CreatedAt),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// SetPlanStatus updates the status of the user's plan.
func (d *DB) SetPlanStatus(ctx context.Context, userID int64, status string) error {
	return mustAffect(d.exec(ctx, "UPDATE plans SET status = ? WHERE user_id = ?", status, userID))
}

// DeletePlan removes the user's plan.
func (d *DB) DeletePlan(ctx context.Context, userID int64) error {
	return mustAffect(d.exec(ctx, "DELETE FROM plans WHERE user_id = ?", userID))
}
