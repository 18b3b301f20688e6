package adapthttp

import (
	"net/http"

	"fitmetrics/internal/app"
)

func (s *Server) handleWorkoutList(w http.ResponseWriter, r *http.Request) {
	dr, err := rangeQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	items, err := s.svc.Workouts.List(r.Context(), userFromContext(r).ID, dr)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

type workoutBody struct {
	Date           string `json:"date"`
	Week           int    `json:"week"`
	Type           string `json:"type"`
	Duration       int    `json:"duration"`
	CaloriesBurned int    `json:"caloriesBurned"`
	Notes          string `json:"notes"`
}

func (s *Server) workoutInput(r *http.Request) (app.WorkoutInput, error) {
	var body workoutBody
	if err := parseJSON(r, &body); err != nil {
		return app.WorkoutInput{}, err
	}
	date, err := parseDate(body.Date, s.now())
	if err != nil {
		return app.WorkoutInput{}, err
	}
	return app.WorkoutInput{
		Date:            date,
		Week:            body.Week,
		Type:            body.Type,
		DurationMinutes: body.Duration,
		CaloriesBurned:  body.CaloriesBurned,
		Notes:           body.Notes,
	}, nil
}

func (s *Server) handleWorkoutCreate(w http.ResponseWriter, r *http.Request) {
	in, err := s.workoutInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entry, err := s.svc.Workouts.Record(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func (s *Server) handleWorkoutUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	in, err := s.workoutInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entry, err := s.svc.Workouts.Update(r.Context(), userFromContext(r).ID, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) handleWorkoutDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.svc.Workouts.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
