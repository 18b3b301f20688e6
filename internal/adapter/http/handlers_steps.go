package adapthttp

import (
	"net/http"

	"fitmetrics/internal/app"
)

func (s *Server) handleStepsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Steps.ListRecent(r.Context(), userFromContext(r).ID, intQuery(r, "limit", 30))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) handleStepsPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date  string `json:"date"`
		Week  int    `json:"week"`
		Count int    `json:"count"`
		Goal  int    `json:"goal"`
	}
	if err := parseJSON(r, &body); err != nil {
		fail(w, r, err)
		return
	}
	date, err := parseDate(body.Date, s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	entry, err := s.svc.Steps.Record(r.Context(), userFromContext(r).ID, app.StepsInput{
		Date: date, Week: body.Week, Count: body.Count, Goal: body.Goal,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) handleStepsToday(w http.ResponseWriter, r *http.Request) {
	today, err := s.svc.Steps.Today(r.Context(), userFromContext(r).ID, s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, today)
}

func (s *Server) handleStepsWeekly(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Steps.Weekly(r.Context(), userFromContext(r).ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, weeks)
}

func (s *Server) handleStepsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.svc.Steps.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
