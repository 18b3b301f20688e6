package adapthttp

import (
	"net/http"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

// handleMealDay returns the meals of ?date= (default today) with totals.
func (s *Server) handleMealDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"), s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	day, err := s.svc.Meals.Day(r.Context(), userFromContext(r).ID, date)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, day)
}

type mealBody struct {
	Date     string            `json:"date"`
	Week     int               `json:"week"`
	MealType string            `json:"mealType"`
	Foods    []domain.FoodItem `json:"foods"`
}

func (s *Server) mealInput(r *http.Request) (app.MealInput, error) {
	var body mealBody
	if err := parseJSON(r, &body); err != nil {
		return app.MealInput{}, err
	}
	date, err := parseDate(body.Date, s.now())
	if err != nil {
		return app.MealInput{}, err
	}
	return app.MealInput{Date: date, Week: body.Week, MealType: body.MealType, Foods: body.Foods}, nil
}

func (s *Server) handleMealCreate(w http.ResponseWriter, r *http.Request) {
	in, err := s.mealInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	meal, err := s.svc.Meals.Record(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, meal)
}

func (s *Server) handleMealUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	in, err := s.mealInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	meal, err := s.svc.Meals.Update(r.Context(), userFromContext(r).ID, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, meal)
}

func (s *Server) handleMealDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.svc.Meals.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
