// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"fitmetrics/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	weights  table[domain.WeightEntry]
	steps    table[domain.StepsEntry]
	workouts table[domain.WorkoutEntry]
	meals    table[domain.Meal]
	plans    map[int64]domain.Plan
	users    []*domain.User

	planIDCounter int64
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{plans: make(map[int64]domain.Plan)}
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.StepsRepository   = (*DB)(nil)
	_ domain.WorkoutRepository = (*DB)(nil)
	_ domain.MealRepository    = (*DB)(nil)
	_ domain.PlanRepository    = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
)

// table holds one kind of dated, user-owned record.
type table[T any] struct {
	rows      []T
	idCounter int64
}

func (t *table[T]) insert(row T, setID func(*T, int64)) int64 {
	t.idCounter++
	setID(&row, t.idCounter)
	t.rows = append(t.rows, row)
	return t.idCounter
}

func (t *table[T]) index(match func(T) bool) int {
	return slices.IndexFunc(t.rows, match)
}

func (t *table[T]) remove(match func(T) bool) error {
	i := t.index(match)
	if i < 0 {
		return domain.ErrNotFound
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return nil
}

// list returns copies of the matching rows in r, ordered by date and then
// insertion.
func (t *table[T]) list(owned func(T) bool, date func(T) time.Time, r domain.DateRange) []T {
	out := make([]T, 0)
	for _, row := range t.rows {
		if owned(row) && r.Contains(date(row)) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return date(out[i]).Before(date(out[j]))
	})
	return out
}

// --- WeightRepository ---

func weightDate(e domain.WeightEntry) time.Time { return e.Date }

// AddWeight stores a weight entry.
func (db *DB) AddWeight(ctx context.Context, userID int64, e domain.WeightEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e.UserID = userID
	e.Date = domain.Day(e.Date)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return db.weights.insert(e, func(e *domain.WeightEntry, id int64) { e.ID = id }), nil
}

// UpdateWeight replaces a weight entry.
func (db *DB) UpdateWeight(ctx context.Context, userID int64, e domain.WeightEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.weights.index(func(w domain.WeightEntry) bool { return w.ID == e.ID && w.UserID == userID })
	if i < 0 {
		return domain.ErrNotFound
	}
	e.UserID = userID
	e.Date = domain.Day(e.Date)
	e.CreatedAt = db.weights.rows[i].CreatedAt
	db.weights.rows[i] = e
	return nil
}

// DeleteWeight deletes a weight entry by ID.
func (db *DB) DeleteWeight(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.weights.remove(func(w domain.WeightEntry) bool { return w.ID == id && w.UserID == userID })
}

// ListWeights lists weight entries in r, oldest first.
func (db *DB) ListWeights(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.weights.list(func(w domain.WeightEntry) bool { return w.UserID == userID }, weightDate, r), nil
}

// RecentWeights lists the most recent weight entries.
func (db *DB) RecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.weights.list(func(w domain.WeightEntry) bool { return w.UserID == userID }, weightDate, domain.DateRange{})
	slices.Reverse(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- StepsRepository ---

// PutSteps stores the count for a day, replacing an existing one.
func (db *DB) PutSteps(ctx context.Context, userID int64, e domain.StepsEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e.UserID = userID
	e.Date = domain.Day(e.Date)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	i := db.steps.index(func(s domain.StepsEntry) bool { return s.UserID == userID && s.Date.Equal(e.Date) })
	if i >= 0 {
		e.ID = db.steps.rows[i].ID
		db.steps.rows[i] = e
		return e.ID, nil
	}
	return db.steps.insert(e, func(e *domain.StepsEntry, id int64) { e.ID = id }), nil
}

// DeleteSteps deletes a step entry by ID.
func (db *DB) DeleteSteps(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.steps.remove(func(s domain.StepsEntry) bool { return s.ID == id && s.UserID == userID })
}

// ListSteps lists step entries in r, oldest first.
func (db *DB) ListSteps(ctx context.Context, userID int64, r domain.DateRange) ([]domain.StepsEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.steps.list(
		func(s domain.StepsEntry) bool { return s.UserID == userID },
		func(s domain.StepsEntry) time.Time { return s.Date },
		r,
	), nil
}

// --- WorkoutRepository ---

// AddWorkout stores a workout.
func (db *DB) AddWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e.UserID = userID
	e.Date = domain.Day(e.Date)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return db.workouts.insert(e, func(e *domain.WorkoutEntry, id int64) { e.ID = id }), nil
}

// UpdateWorkout replaces a workout.
func (db *DB) UpdateWorkout(ctx context.Context, userID int64, e domain.WorkoutEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.workouts.index(func(w domain.WorkoutEntry) bool { return w.ID == e.ID && w.UserID == userID })
	if i < 0 {
		return domain.ErrNotFound
	}
	e.UserID = userID
	e.Date = domain.Day(e.Date)
	e.CreatedAt = db.workouts.rows[i].CreatedAt
	db.workouts.rows[i] = e
	return nil
}

// DeleteWorkout deletes a workout by ID.
func (db *DB) DeleteWorkout(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.workouts.remove(func(w domain.WorkoutEntry) bool { return w.ID == id && w.UserID == userID })
}

// ListWorkouts lists workouts in r, oldest first.
func (db *DB) ListWorkouts(ctx context.Context, userID int64, r domain.DateRange) ([]domain.WorkoutEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.workouts.list(
		func(w domain.WorkoutEntry) bool { return w.UserID == userID },
		func(w domain.WorkoutEntry) time.Time { return w.Date },
		r,
	), nil
}

// --- MealRepository ---

// AddMeal stores a meal.
func (db *DB) AddMeal(ctx context.Context, userID int64, m domain.Meal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m.UserID = userID
	m.Date = domain.Day(m.Date)
	m.Foods = slices.Clone(m.Foods)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return db.meals.insert(m, func(m *domain.Meal, id int64) { m.ID = id }), nil
}

// UpdateMeal replaces a meal and its food items.
func (db *DB) UpdateMeal(ctx context.Context, userID int64, m domain.Meal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.meals.index(func(x domain.Meal) bool { return x.ID == m.ID && x.UserID == userID })
	if i < 0 {
		return domain.ErrNotFound
	}
	m.UserID = userID
	m.Date = domain.Day(m.Date)
	m.Foods = slices.Clone(m.Foods)
	m.CreatedAt = db.meals.rows[i].CreatedAt
	db.meals.rows[i] = m
	return nil
}

// DeleteMeal deletes a meal by ID.
func (db *DB) DeleteMeal(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.meals.remove(func(m domain.Meal) bool { return m.ID == id && m.UserID == userID })
}

// ListMeals lists meals in r, oldest first.
func (db *DB) ListMeals(ctx context.Context, userID int64, r domain.DateRange) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := db.meals.list(
		func(m domain.Meal) bool { return m.UserID == userID },
		func(m domain.Meal) time.Time { return m.Date },
		r,
	)
	for i := range out {
		out[i].Foods = slices.Clone(out[i].Foods)
	}
	return out, nil
}

// --- PlanRepository ---

// GetPlan returns the user's plan, or nil if there is none.
func (db *DB) GetPlan(ctx context.Context, userID int64) (*domain.Plan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SavePlan stores p as the user's plan, replacing any previous one.
func (db *DB) SavePlan(ctx context.Context, userID int64, p domain.Plan) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.planIDCounter++
	p.ID = db.planIDCounter
	p.UserID = userID
	p.StartDate = domain.Day(p.StartDate)
	db.plans[userID] = p
	return p.ID, nil
}

// SetPlanStatus updates the status of the user's plan.
func (db *DB) SetPlanStatus(ctx context.Context, userID int64, status string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	db.plans[userID] = p
	return nil
}

// DeletePlan removes the user's plan.
func (db *DB) DeletePlan(ctx context.Context, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.plans[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(db.plans, userID)
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// UpdatePassword replaces a user's password hash.
func (db *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, u := range db.users {
		if u.ID == id {
			updated := *u
			updated.PasswordHash = passwordHash
			db.users[i] = &updated
			return nil
		}
	}
	return domain.ErrNotFound
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}
