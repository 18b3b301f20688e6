package adapthttp

import (
	"net/http"

	"fitmetrics/internal/metrics"
)

func periodQuery(r *http.Request) string {
	if p := r.URL.Query().Get("period"); p != "" {
		return p
	}
	return string(metrics.PeriodWeek)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.svc.Analytics.Overview(r.Context(), userFromContext(r).ID, s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, o)
}

func (s *Server) handleWeightAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Analytics.Weight(r.Context(), userFromContext(r).ID, periodQuery(r), unitQuery(r), s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (s *Server) handleStepsAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Analytics.Steps(r.Context(), userFromContext(r).ID, periodQuery(r), s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (s *Server) handleWorkoutAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Analytics.Workouts(r.Context(), userFromContext(r).ID, periodQuery(r), s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (s *Server) handleMealAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Analytics.Meals(r.Context(), userFromContext(r).ID, periodQuery(r), s.now())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}
