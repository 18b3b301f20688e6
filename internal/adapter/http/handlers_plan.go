package adapthttp

import (
	"context"
	"fmt"
	"net/http"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

// handlePlanGet returns the plan and how far into it the user is.
func (s *Server) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Plans.Progress(r.Context(), userFromContext(r).ID, s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate         string   `json:"startDate"`
		NumberOfWeeks     int      `json:"numberOfWeeks"`
		TargetWeight      *float64 `json:"targetWeight"`
		Unit              string   `json:"unit"`
		DailyStepsGoal    int      `json:"dailyStepsGoal"`
		WeeklyWorkoutGoal int      `json:"weeklyWorkoutGoal"`
	}
	if err := parseJSON(r, &body); err != nil {
		fail(w, r, err)
		return
	}
	start, err := parseDate(body.StartDate, s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	if body.TargetWeight != nil && body.Unit != "" {
		if !domain.ValidUnit(body.Unit) {
			fail(w, r, fmt.Errorf("%w: unknown unit %q", app.ErrInvalidInput, body.Unit))
			return
		}
		kg := domain.ConvertWeight(*body.TargetWeight, body.Unit, domain.UnitKg)
		body.TargetWeight = &kg
	}

	p, err := s.svc.Plans.Create(r.Context(), userFromContext(r).ID, app.PlanInput{
		StartDate:         start,
		NumberOfWeeks:     body.NumberOfWeeks,
		TargetWeight:      body.TargetWeight,
		DailyStepsGoal:    body.DailyStepsGoal,
		WeeklyWorkoutGoal: body.WeeklyWorkoutGoal,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

func (s *Server) handlePlanPause(w http.ResponseWriter, r *http.Request) {
	s.planTransition(w, r, s.svc.Plans.Pause)
}

func (s *Server) handlePlanResume(w http.ResponseWriter, r *http.Request) {
	s.planTransition(w, r, s.svc.Plans.Resume)
}

func (s *Server) planTransition(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (*domain.Plan, error)) {
	p, err := fn(r.Context(), userFromContext(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Plans.Delete(r.Context(), userFromContext(r).ID); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
