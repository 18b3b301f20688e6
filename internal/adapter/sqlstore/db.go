// Package sqlstore implements the domain repositories on database/sql, for
// PostgreSQL in production and SQLite for local use and tests.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fitmetrics/internal/domain"
)

// Dialect selects placeholder syntax and DDL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.StepsRepository   = (*DB)(nil)
	_ domain.WorkoutRepository = (*DB)(nil)
	_ domain.MealRepository    = (*DB)(nil)
	_ domain.PlanRepository    = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
)

// OpenPostgres connects to PostgreSQL, pings, and runs migrations.
func OpenPostgres(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)
	return open(s, Postgres)
}

// OpenSQLite opens (creating if needed) a SQLite database at path and runs
// migrations. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*DB, error) {
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database, and SQLite
	// allows a single writer anyway
	s.SetMaxOpenConns(1)
	return open(s, SQLite)
}

func open(s *sql.DB, dialect Dialect) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, dialect: dialect}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	id := "BIGSERIAL PRIMARY KEY"
	if d.dialect == SQLite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id " + id + ", username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TEXT NOT NULL);",
		"CREATE TABLE IF NOT EXISTS weights (id " + id + ", user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, date TEXT NOT NULL, week INTEGER NOT NULL, weight DOUBLE PRECISION NOT NULL, unit TEXT NOT NULL CHECK(unit IN ('kg','lb')), notes TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_weights_user_date ON weights(user_id, date);",
		"CREATE TABLE IF NOT EXISTS steps (id " + id + ", user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, date TEXT NOT NULL, week INTEGER NOT NULL, steps INTEGER NOT NULL, goal INTEGER NOT NULL, created_at TEXT NOT NULL, UNIQUE(user_id, date));",
		"CREATE TABLE IF NOT EXISTS workouts (id " + id + ", user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, date TEXT NOT NULL, week INTEGER NOT NULL, type TEXT NOT NULL, duration_minutes INTEGER NOT NULL, calories_burned INTEGER NOT NULL, notes TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, date);",
		"CREATE TABLE IF NOT EXISTS meals (id " + id + ", user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, date TEXT NOT NULL, week INTEGER NOT NULL, meal_type TEXT NOT NULL, foods TEXT NOT NULL, created_at TEXT NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_meals_user_date ON meals(user_id, date);",
		"CREATE TABLE IF NOT EXISTS plans (id " + id + ", user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE, start_date TEXT NOT NULL, weeks INTEGER NOT NULL, target_weight DOUBLE PRECISION, daily_steps_goal INTEGER NOT NULL, weekly_workout_goal INTEGER NOT NULL, status TEXT NOT NULL, created_at TEXT NOT NULL);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (d *DB) rebind(query string) string {
	if d.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.sql.ExecContext(ctx, d.rebind(query), args...)
}

func (d *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.sql.QueryContext(ctx, d.rebind(query), args...)
}

func (d *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sql.QueryRowContext(ctx, d.rebind(query), args...)
}

// insert runs an INSERT ... RETURNING id statement.
func (d *DB) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := d.queryRow(ctx, query+" RETURNING id", args...).Scan(&id)
	return id, err
}

// mustAffect maps a write that touched no rows to domain.ErrNotFound.
func mustAffect(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// where appends the date bounds of r to a user filter.
func where(userID int64, r domain.DateRange) (string, []any) {
	clause := "user_id = ?"
	args := []any{userID}
	if !r.Start.IsZero() {
		clause += " AND date >= ?"
		args = append(args, formatDay(r.Start))
	}
	if !r.End.IsZero() {
		clause += " AND date <= ?"
		args = append(args, formatDay(r.End))
	}
	return clause, args
}

func formatDay(t time.Time) string { return domain.Day(t).Format(domain.DayLayout) }

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// timestamps converts the TEXT date and created_at columns of a row.
func timestamps(date, created string) (time.Time, time.Time, error) {
	d, err := domain.ParseDay(date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad date %q: %w", date, err)
	}
	c, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	return d, c, nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
