package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmetrics/internal/domain"
)

func newTestDB(t *testing.T) (*DB, int64) {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	u, err := db.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	return db, u.ID
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: Postgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))
	lite := &DB{dialect: SQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestWhere(t *testing.T) {
	clause, args := where(3, domain.DateRange{})
	assert.Equal(t, "user_id = ?", clause)
	assert.Equal(t, []any{int64(3)}, args)

	r := domain.DateRange{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 18, 45, 0, 0, time.UTC),
	}
	clause, args = where(3, r)
	assert.Equal(t, "user_id = ? AND date >= ? AND date <= ?", clause)
	assert.Equal(t, []any{int64(3), "2025-03-01", "2025-03-31"}, args)
}

func TestUsers(t *testing.T) {
	db, id := newTestDB(t)
	ctx := context.Background()

	u, err := db.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)

	u, err = db.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)

	missing, err := db.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = db.Create(ctx, "alice", "other")
	assert.Error(t, err, "username is unique")

	require.NoError(t, db.UpdatePassword(ctx, id, "newhash"))
	u, err = db.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "newhash", u.PasswordHash)
	assert.ErrorIs(t, db.UpdatePassword(ctx, id+1, "x"), domain.ErrNotFound)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWeights(t *testing.T) {
	db, uid := newTestDB(t)
	ctx := context.Background()

	for _, e := range []domain.WeightEntry{
		{Date: mustDay(t, "2025-01-08"), Week: 2, Weight: 79.5, Unit: domain.UnitKg},
		{Date: mustDay(t, "2025-01-01"), Week: 1, Weight: 80, Unit: domain.UnitKg, Notes: "start"},
		{Date: mustDay(t, "2025-01-15"), Week: 3, Weight: 174, Unit: domain.UnitLb},
	} {
		_, err := db.AddWeight(ctx, uid, e)
		require.NoError(t, err)
	}

	all, err := db.ListWeights(ctx, uid, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, mustDay(t, "2025-01-01"), all[0].Date)
	assert.Equal(t, "start", all[0].Notes)
	assert.Equal(t, domain.UnitLb, all[2].Unit)
	assert.False(t, all[0].CreatedAt.IsZero())

	ranged, err := db.ListWeights(ctx, uid, domain.DateRange{Start: mustDay(t, "2025-01-02"), End: mustDay(t, "2025-01-08")})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 79.5, ranged[0].Weight)

	recent, err := db.RecentWeights(ctx, uid, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, mustDay(t, "2025-01-15"), recent[0].Date)

	e := all[1]
	e.Weight = 79.1
	require.NoError(t, db.UpdateWeight(ctx, uid, e))
	got, err := db.ListWeights(ctx, uid, domain.DateRange{Start: e.Date, End: e.Date})
	require.NoError(t, err)
	assert.Equal(t, 79.1, got[0].Weight)

	assert.ErrorIs(t, db.UpdateWeight(ctx, uid+1, e), domain.ErrNotFound)
	assert.ErrorIs(t, db.DeleteWeight(ctx, uid+1, e.ID), domain.ErrNotFound)
	require.NoError(t, db.DeleteWeight(ctx, uid, e.ID))
	assert.ErrorIs(t, db.DeleteWeight(ctx, uid, e.ID), domain.ErrNotFound)
}

func TestStepsUpsert(t *testing.T) {
	db, uid := newTestDB(t)
	ctx := context.Background()
	d := mustDay(t, "2025-02-03")

	_, err := db.PutSteps(ctx, uid, domain.StepsEntry{Date: d, Week: 1, Count: 4000, Goal: 8000})
	require.NoError(t, err)
	_, err = db.PutSteps(ctx, uid, domain.StepsEntry{Date: d, Week: 1, Count: 9000, Goal: 8000})
	require.NoError(t, err)

	got, err := db.ListSteps(ctx, uid, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9000, got[0].Count)
	assert.True(t, got[0].GoalMet())

	require.NoError(t, db.DeleteSteps(ctx, uid, got[0].ID))
	assert.ErrorIs(t, db.DeleteSteps(ctx, uid, got[0].ID), domain.ErrNotFound)
}

func TestWorkoutsAndMeals(t *testing.T) {
	db, uid := newTestDB(t)
	ctx := context.Background()
	d := mustDay(t, "2025-02-03")

	wid, err := db.AddWorkout(ctx, uid, domain.WorkoutEntry{Date: d, Week: 1, Type: "run", DurationMinutes: 30, CaloriesBurned: 300})
	require.NoError(t, err)
	ws, err := db.ListWorkouts(ctx, uid, domain.DateRange{Start: d, End: d})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "run", ws[0].Type)
	assert.Equal(t, 30, ws[0].DurationMinutes)

	require.NoError(t, db.UpdateWorkout(ctx, uid, domain.WorkoutEntry{ID: wid, Date: d, Week: 1, Type: "swim", DurationMinutes: 40, CaloriesBurned: 350, Notes: "pool"}))
	ws, err = db.ListWorkouts(ctx, uid, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "swim", ws[0].Type)
	assert.Equal(t, 40, ws[0].DurationMinutes)
	assert.Equal(t, "pool", ws[0].Notes)
	assert.ErrorIs(t, db.UpdateWorkout(ctx, uid+1, domain.WorkoutEntry{ID: wid, Date: d, Week: 1, Type: "run"}), domain.ErrNotFound)
	require.NoError(t, db.DeleteWorkout(ctx, uid, wid))

	foods := []domain.FoodItem{
		{Name: "oats", Quantity: "80g", Calories: 300, Protein: 10, Carbs: 54, Fats: 6},
		{Name: "milk", Quantity: "200ml", Calories: 120, Protein: 7, Carbs: 10, Fats: 5},
	}
	mid, err := db.AddMeal(ctx, uid, domain.Meal{Date: d, Week: 1, MealType: domain.MealBreakfast, Foods: foods})
	require.NoError(t, err)
	ms, err := db.ListMeals(ctx, uid, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, mid, ms[0].ID)
	assert.Equal(t, foods, ms[0].Foods)

	dinner := []domain.FoodItem{{Name: "salmon", Calories: 400, Protein: 40, Fats: 25}}
	require.NoError(t, db.UpdateMeal(ctx, uid, domain.Meal{ID: mid, Date: d, Week: 1, MealType: domain.MealDinner, Foods: dinner}))
	ms, err = db.ListMeals(ctx, uid, domain.DateRange{})
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, domain.MealDinner, ms[0].MealType)
	assert.Equal(t, dinner, ms[0].Foods)
	assert.ErrorIs(t, db.UpdateMeal(ctx, uid, domain.Meal{ID: mid + 1, Date: d, MealType: domain.MealDinner}), domain.ErrNotFound)
	require.NoError(t, db.DeleteMeal(ctx, uid, mid))
	assert.ErrorIs(t, db.DeleteMeal(ctx, uid, mid), domain.ErrNotFound)
}

func TestPlans(t *testing.T) {
	db, uid := newTestDB(t)
	ctx := context.Background()

	p, err := db.GetPlan(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, db.SetPlanStatus(ctx, uid, domain.PlanPaused), domain.ErrNotFound)

	target := 72.5
	_, err = db.SavePlan(ctx, uid, domain.Plan{
		StartDate: mustDay(t, "2025-01-01"), NumberOfWeeks: 12, TargetWeight: &target,
		DailyStepsGoal: 8000, WeeklyWorkoutGoal: 3, Status: domain.PlanActive,
	})
	require.NoError(t, err)

	// a second save replaces the first
	id, err := db.SavePlan(ctx, uid, domain.Plan{
		StartDate: mustDay(t, "2025-02-01"), NumberOfWeeks: 8,
		DailyStepsGoal: 10000, WeeklyWorkoutGoal: 4, Status: domain.PlanActive,
	})
	require.NoError(t, err)

	p, err = db.GetPlan(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, 8, p.NumberOfWeeks)
	assert.Nil(t, p.TargetWeight)
	assert.Equal(t, mustDay(t, "2025-02-01"), p.StartDate)

	require.NoError(t, db.SetPlanStatus(ctx, uid, domain.PlanPaused))
	p, err = db.GetPlan(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPaused, p.Status)

	require.NoError(t, db.DeletePlan(ctx, uid))
	assert.ErrorIs(t, db.DeletePlan(ctx, uid), domain.ErrNotFound)
}
