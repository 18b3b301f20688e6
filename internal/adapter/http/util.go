package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
	"fitmetrics/internal/importer"
	"fitmetrics/internal/metrics"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// fail writes err with the status its kind maps to. Unexpected errors are
// logged and reported without detail.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		err = errors.New("internal error")
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, metrics.ErrInvalidPeriod),
		errors.Is(err, metrics.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidWeek),
		errors.Is(err, importer.ErrInvalidHeader),
		errors.Is(err, importer.ErrTooManyRows):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoPlan):
		return http.StatusNotFound
	case errors.Is(err, app.ErrInvalidCredentials),
		errors.Is(err, app.ErrInvalidToken),
		errors.Is(err, app.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrUsersExist):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %w", app.ErrInvalidInput, err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id", app.ErrInvalidInput)
	}
	return id, nil
}

// parseDate accepts YYYY-MM-DD. An empty string means fallback.
func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return domain.Day(fallback), nil
	}
	d, err := domain.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", app.ErrInvalidInput, s)
	}
	return d, nil
}

// rangeQuery reads optional from/to query parameters.
func rangeQuery(r *http.Request) (domain.DateRange, error) {
	var dr domain.DateRange
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if dr.Start, err = parseDate(v, time.Time{}); err != nil {
			return dr, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if dr.End, err = parseDate(v, time.Time{}); err != nil {
			return dr, err
		}
	}
	return dr, nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
