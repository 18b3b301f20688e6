package adapthttp

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

// maxUploadBytes bounds CSV uploads; the importer bounds the row count.
const maxUploadBytes = 2 << 20

type weightBody struct {
	Date   string  `json:"date"`
	Week   int     `json:"week"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	Notes  string  `json:"notes"`
}

func (s *Server) weightInput(r *http.Request) (app.WeightInput, error) {
	var body weightBody
	if err := parseJSON(r, &body); err != nil {
		return app.WeightInput{}, err
	}
	date, err := parseDate(body.Date, s.now())
	if err != nil {
		return app.WeightInput{}, err
	}
	return app.WeightInput{Date: date, Week: body.Week, Weight: body.Weight, Unit: body.Unit, Notes: body.Notes}, nil
}

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Weight.ListRecent(r.Context(), userFromContext(r).ID, intQuery(r, "limit", 30))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	in, err := s.weightInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entry, err := s.svc.Weight.Record(r.Context(), userFromContext(r).ID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func (s *Server) handleWeightUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	in, err := s.weightInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	entry, err := s.svc.Weight.Update(r.Context(), userFromContext(r).ID, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entry)
}

func (s *Server) handleWeightDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.svc.Weight.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeightWeekly(w http.ResponseWriter, r *http.Request) {
	weeks, err := s.svc.Weight.Weekly(r.Context(), userFromContext(r).ID, unitQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, weeks)
}

func unitQuery(r *http.Request) string {
	if u := r.URL.Query().Get("unit"); u != "" {
		return u
	}
	return domain.UnitKg
}

// handleWeightUpload accepts a CSV either as the "file" field of a
// multipart form or as the raw request body.
func (s *Server) handleWeightUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		f, _, err := r.FormFile("file")
		if err != nil {
			fail(w, r, fmt.Errorf("%w: file field: %w", app.ErrInvalidInput, err))
			return
		}
		defer f.Close() //nolint:errcheck
		src = f
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		fail(w, r, fmt.Errorf("%w: read upload: %w", app.ErrInvalidInput, err))
		return
	}

	res, err := s.svc.Weight.Import(r.Context(), userFromContext(r).ID, string(raw))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}
