package domain

import (
	"context"
	"time"
)

// Meal types, in the order a day is displayed.
const (
	MealUponWakeup = "upon_wakeup"
	MealPreWorkout = "pre_workout"
	MealBreakfast  = "breakfast"
	MealLunch      = "lunch"
	MealSnacks     = "snacks"
	MealDinner     = "dinner"
	MealOther      = "other"
)

// MealTypes lists every accepted meal type.
var MealTypes = []string{
	MealUponWakeup, MealPreWorkout, MealBreakfast, MealLunch, MealSnacks, MealDinner, MealOther,
}

// ValidMealType reports whether t is one of MealTypes.
func ValidMealType(t string) bool {
	for _, mt := range MealTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// FoodItem is a single food within a meal. Quantity is free text
// ("2 slices", "150g"); the nutrient fields are whole numbers.
type FoodItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`
}

// Meal is a set of food items eaten together.
type Meal struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Date      time.Time  `json:"date"`
	Week      int        `json:"week"`
	MealType  string     `json:"mealType"`
	Foods     []FoodItem `json:"foods"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MealRepository is the port for meal persistence.
type MealRepository interface {
	AddMeal(ctx context.Context, userID int64, m Meal) (int64, error)
	UpdateMeal(ctx context.Context, userID int64, m Meal) error
	DeleteMeal(ctx context.Context, userID, id int64) error
	ListMeals(ctx context.Context, userID int64, r DateRange) ([]Meal, error)
}
