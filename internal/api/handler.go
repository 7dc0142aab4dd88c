// Package api exposes the flood alert service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/auth"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	middlewares "github.com/rajasatyajit/FloodAlert/internal/middleware"
	"github.com/rajasatyajit/FloodAlert/internal/pipeline"
	"github.com/rajasatyajit/FloodAlert/internal/ratelimit"
	"github.com/rajasatyajit/FloodAlert/internal/risk"
	"github.com/rajasatyajit/FloodAlert/internal/safeplaces"
	"github.com/rajasatyajit/FloodAlert/internal/store"
)

// Deps are the collaborators a Handler serves from.
type Deps struct {
	Users    store.UserStore
	Pipeline *pipeline.Pipeline
	Resolver *risk.Resolver
	Ranker   *safeplaces.Ranker
	Limiter  ratelimit.Limiter
	Issuer   *auth.Issuer
	Admin    *auth.AdminVerifier
	Alerts   config.AlertsConfig
	Clock    clockwork.Clock

	Version   string
	BuildTime string
	GitCommit string
}

// Handler handles HTTP requests for the API
type Handler struct {
	users     store.UserStore
	pipeline  *pipeline.Pipeline
	resolver  *risk.Resolver
	ranker    *safeplaces.Ranker
	limiter   ratelimit.Limiter
	issuer    *auth.Issuer
	admin     *auth.AdminVerifier
	alerts    config.AlertsConfig
	clock     clockwork.Clock
	version   string
	buildTime string
	gitCommit string
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(d Deps) *Handler {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	return &Handler{
		users:     d.Users,
		pipeline:  d.Pipeline,
		resolver:  d.Resolver,
		ranker:    d.Ranker,
		limiter:   d.Limiter,
		issuer:    d.Issuer,
		admin:     d.Admin,
		alerts:    d.Alerts,
		clock:     d.Clock,
		version:   d.Version,
		buildTime: d.BuildTime,
		gitCommit: d.GitCommit,
		startTime: d.Clock.Now(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/health/live", h.livenessHandler)
		r.Get("/version", h.versionHandler)

		// Reference data
		r.Get("/cities", h.citiesHandler)
		r.Get("/risk", h.riskByLevelHandler)
		r.Get("/risk/{city}", h.riskHandler)
		r.Get("/safe-places/{city}", h.safePlacesHandler)

		// Subscribers
		r.Post("/alerts/register", h.registerHandler)
		r.Post("/auth/signup", h.signupHandler)
		r.Post("/auth/login", h.loginHandler)
		r.With(middlewares.RequireUser(h.issuer)).Get("/me", h.meHandler)

		r.With(middlewares.RateLimit(h.limiter, "send-direct", h.alerts.DirectPerMinute)).
			Post("/alerts/send-direct", h.sendDirectHandler)

		// Operator routes (protected by shared secret middleware)
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AdminSecret(h.admin))
			r.Post("/alerts/send-by-city", h.sendByCityHandler)
			r.Post("/alerts/send", h.broadcastHandler)
			r.Post("/alerts/test", h.testAlertHandler)
			r.Get("/alerts/users/{city}", h.cityUsersHandler)
		})
	})

	// Root health check
	r.Get("/health", h.healthHandler)
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": h.clock.Now().UTC(),
		"version":   h.version,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{
		"store": "ok",
	}

	statusCode := http.StatusOK

	if err := h.users.Health(ctx); err != nil {
		checks["store"] = "error: " + err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    "ready",
		"timestamp": h.clock.Now().UTC(),
		"checks":    checks,
	}
	if statusCode != http.StatusOK {
		response["status"] = "not ready"
	}

	h.writeJSONResponse(w, statusCode, response)
}

// livenessHandler checks if the application is alive
func (h *Handler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": h.clock.Now().UTC(),
		"uptime":    h.clock.Since(h.startTime).String(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// versionHandler returns version information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
		"risk_table": h.resolver.Table().Name(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		return apperrors.ValidationError{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// writeJSONResponse writes a JSON response
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	response := ErrorResponse{
		Success:   false,
		Error:     http.StatusText(statusCode),
		Message:   message,
		Timestamp: h.clock.Now().UTC(),
		RequestID: chimw.GetReqID(r.Context()),
	}

	h.writeJSONResponse(w, statusCode, response)
}

// writeError maps an application error onto a status code. Unexpected
// errors are logged and hidden from the caller.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeErrorResponse(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		h.writeErrorResponse(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrConflict):
		h.writeErrorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		h.writeErrorResponse(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, apperrors.ErrForbidden):
		h.writeErrorResponse(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperrors.ErrRateLimit):
		h.writeErrorResponse(w, r, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "service unavailable")
	default:
		logger.WithContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
