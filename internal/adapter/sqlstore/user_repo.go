package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitmetrics/internal/domain"
)

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var created string
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = t
	return &u, nil
}

func (d *DB) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(d.queryRow(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.getUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.getUser(ctx, "SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	now := time.Now().UTC()
	id, err := d.insert(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, formatTime(now),
	)
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// UpdatePassword replaces a user's password hash.
func (d *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return mustAffect(d.exec(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id))
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.queryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
