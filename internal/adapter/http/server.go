package adapthttp

import (
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/oauth2"

	"fitmetrics/internal/app"
	"fitmetrics/internal/domain"
)

// OIDCConfig holds OIDC configuration.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Services bundles the application services the adapter routes to.
type Services struct {
	Weight    *app.WeightService
	Steps     *app.StepsService
	Workouts  *app.WorkoutService
	Meals     *app.MealService
	Plans     *app.PlanService
	Analytics *app.AnalyticsService
	Auth      *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc            Services
	webDir         string
	oidcConfig     OIDCConfig
	allowedOrigins []string
	localUser      *domain.User
	disableAuth    bool
	trustProxy     bool
	now            func() time.Time
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{svc: svc, webDir: webDir, now: time.Now}
}

// WithOIDC enables SSO login through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithCORS allows cross-origin API calls from the given origins.
func (s *Server) WithCORS(origins []string) *Server {
	s.allowedOrigins = origins
	return s
}

// WithoutAuth disables authentication; every request acts as user.
func (s *Server) WithoutAuth(user *domain.User) *Server {
	s.disableAuth = true
	s.localUser = user
	return s
}

// WithForwardAuth trusts the Remote-User header set by an authenticating
// reverse proxy.
func (s *Server) WithForwardAuth() *Server {
	s.trustProxy = true
	return s
}

// WithClock overrides the server's notion of the current time.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	// public auth endpoints
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/setup", s.handleSetupUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	priv := api.NewRoute().Subrouter()
	priv.Use(s.authMiddleware)

	priv.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	priv.HandleFunc("/auth/password", s.handleChangePassword).Methods(http.MethodPut)

	priv.HandleFunc("/weight", s.handleWeightList).Methods(http.MethodGet)
	priv.HandleFunc("/weight", s.handleWeightCreate).Methods(http.MethodPost)
	priv.HandleFunc("/weight/weekly", s.handleWeightWeekly).Methods(http.MethodGet)
	priv.HandleFunc("/weight/upload", s.handleWeightUpload).Methods(http.MethodPost)
	priv.HandleFunc("/weight/{id:[0-9]+}", s.handleWeightUpdate).Methods(http.MethodPut)
	priv.HandleFunc("/weight/{id:[0-9]+}", s.handleWeightDelete).Methods(http.MethodDelete)

	priv.HandleFunc("/steps", s.handleStepsList).Methods(http.MethodGet)
	priv.HandleFunc("/steps", s.handleStepsPut).Methods(http.MethodPost, http.MethodPut)
	priv.HandleFunc("/steps/today", s.handleStepsToday).Methods(http.MethodGet)
	priv.HandleFunc("/steps/weekly", s.handleStepsWeekly).Methods(http.MethodGet)
	priv.HandleFunc("/steps/{id:[0-9]+}", s.handleStepsDelete).Methods(http.MethodDelete)

	priv.HandleFunc("/workouts", s.handleWorkoutList).Methods(http.MethodGet)
	priv.HandleFunc("/workouts", s.handleWorkoutCreate).Methods(http.MethodPost)
	priv.HandleFunc("/workouts/{id:[0-9]+}", s.handleWorkoutUpdate).Methods(http.MethodPut)
	priv.HandleFunc("/workouts/{id:[0-9]+}", s.handleWorkoutDelete).Methods(http.MethodDelete)

	priv.HandleFunc("/meals", s.handleMealDay).Methods(http.MethodGet)
	priv.HandleFunc("/meals", s.handleMealCreate).Methods(http.MethodPost)
	priv.HandleFunc("/meals/{id:[0-9]+}", s.handleMealUpdate).Methods(http.MethodPut)
	priv.HandleFunc("/meals/{id:[0-9]+}", s.handleMealDelete).Methods(http.MethodDelete)

	priv.HandleFunc("/plan", s.handlePlanGet).Methods(http.MethodGet)
	priv.HandleFunc("/plan", s.handlePlanCreate).Methods(http.MethodPost, http.MethodPut)
	priv.HandleFunc("/plan", s.handlePlanDelete).Methods(http.MethodDelete)
	priv.HandleFunc("/plan/pause", s.handlePlanPause).Methods(http.MethodPost)
	priv.HandleFunc("/plan/resume", s.handlePlanResume).Methods(http.MethodPost)

	priv.HandleFunc("/analytics/overview", s.handleOverview).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/weight", s.handleWeightAnalytics).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/steps", s.handleStepsAnalytics).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/workouts", s.handleWorkoutAnalytics).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/meals", s.handleMealAnalytics).Methods(http.MethodGet)

	r.PathPrefix("/").Handler(spaFromDisk(s.webDir))

	var h http.Handler = r
	if len(s.allowedOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler(h)
	}
	return s.loggingMiddleware(withNoCache(h))
}
