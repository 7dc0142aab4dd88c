package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/internal/store"
)

type registerRequest struct {
	Email string `json:"email"`
	City  string `json:"city"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type cityRequest struct {
	City string `json:"city"`
}

type broadcastRequest struct {
	City       string `json:"city"`
	Message    string `json:"message"`
	AlertLevel string `json:"alert_level"`
}

type emailCityRequest struct {
	Email string `json:"email"`
	City  string `json:"city"`
}

// registerHandler handles POST /alerts/register. Registering an email again
// moves it to the new city.
func (h *Handler) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	u, created, err := store.Register(r.Context(), h.users, store.Registration{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		City:  req.City,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.WithContext(r.Context()).Info("User registered for alerts", "user_id", u.ID, "city", u.City, "created", created)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.writeJSONResponse(w, status, map[string]any{
		"success":   true,
		"message":   "Successfully registered for flood alerts in " + strings.TrimSpace(req.City),
		"user":      u,
		"created":   created,
		"timestamp": h.clock.Now().UTC(),
	})
}

func (h *Handler) writeDispatch(w http.ResponseWriter, status int, message string, res *models.DispatchResult) {
	h.writeJSONResponse(w, status, map[string]any{
		"success":   status < 300,
		"message":   message,
		"result":    res,
		"timestamp": h.clock.Now().UTC(),
	})
}

// sendByCityHandler handles POST /alerts/send-by-city. A per-city cooldown
// stops a second run from going out while the first is still fresh.
func (h *Handler) sendByCityHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req cityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		h.writeError(w, r, apperrors.ValidationError{Field: "city", Message: "city is required"})
		return
	}

	cooldownKey := "send-by-city:" + cities.Normalize(city)
	held := false
	if h.alerts.CityCooldown > 0 {
		ok, retry, err := h.limiter.AcquireCooldown(ctx, cooldownKey, h.alerts.CityCooldown)
		switch {
		case err != nil:
			logger.WithContext(ctx).Warn("Cooldown check failed, sending anyway", "city", city, "error", err)
		case !ok:
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
			h.writeError(w, r, fmt.Errorf("alerts for %s were sent recently: %w", city, apperrors.ErrRateLimit))
			return
		default:
			held = true
		}
	}

	res, err := h.pipeline.SendByCity(ctx, city)
	// Only a run that actually alerted users keeps the cooldown.
	if held && (err != nil || !res.Alerted) {
		if rerr := h.limiter.ReleaseCooldown(context.WithoutCancel(ctx), cooldownKey); rerr != nil {
			logger.WithContext(ctx).Warn("Failed to release cooldown", "city", city, "error", rerr)
		}
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var msg string
	switch {
	case res.UsersFound == 0:
		msg = "No users found for this city."
	case !res.Alerted:
		msg = fmt.Sprintf("No alerts sent. Risk level for %s is %s.", city, res.RiskLevel)
	default:
		msg = fmt.Sprintf("SMS + Email alerts sent for %s (%s risk).", city, res.RiskLevel)
	}
	h.writeDispatch(w, http.StatusOK, msg, res)
}

// broadcastHandler handles POST /alerts/send. A missing or unknown level is
// sent as moderate.
func (h *Handler) broadcastHandler(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	level, ok := models.ParseRiskLevel(req.AlertLevel)
	if !ok {
		level = models.RiskModerate
	}

	res, err := h.pipeline.Broadcast(r.Context(), req.City, req.Message, level)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	msg := fmt.Sprintf("Flood alert sent to %d users in %s", res.UsersFound, res.City)
	if res.UsersFound == 0 {
		msg = "No users registered for alerts in " + res.City
	}
	h.writeDispatch(w, http.StatusOK, msg, res)
}

// cityUsersHandler handles GET /alerts/users/{city}.
func (h *Handler) cityUsersHandler(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	users, err := h.users.FindByCity(r.Context(), city)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	type entry struct {
		Email          string    `json:"email"`
		City           string    `json:"city"`
		RegisteredAt   time.Time `json:"registered_at"`
		AlertsReceived int       `json:"alerts_received"`
	}
	out := make([]entry, 0, len(users))
	for _, u := range users {
		out = append(out, entry{Email: u.Email, City: u.City, RegisteredAt: u.CreatedAt, AlertsReceived: u.AlertsReceived})
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"city":        city,
		"users_count": len(out),
		"users":       out,
		"timestamp":   h.clock.Now().UTC(),
	})
}

// oneShotStatus is 200 when the single email went out and 502 otherwise.
func oneShotStatus(res *models.DispatchResult) int {
	if res.EmailsSent > 0 {
		return http.StatusOK
	}
	return http.StatusBadGateway
}

// testAlertHandler handles POST /alerts/test.
func (h *Handler) testAlertHandler(w http.ResponseWriter, r *http.Request) {
	var req emailCityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		h.writeError(w, r, apperrors.ValidationError{Field: "email", Message: "email is required for test alert"})
		return
	}

	res, err := h.pipeline.SendTest(r.Context(), req.Email, req.City)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeDispatch(w, oneShotStatus(res), "Test flood alert sent to "+req.Email, res)
}

// sendDirectHandler handles POST /alerts/send-direct for visitors who are not
// registered. It is rate limited per client.
func (h *Handler) sendDirectHandler(w http.ResponseWriter, r *http.Request) {
	var req emailCityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := (store.Registration{Email: req.Email, City: req.City}).Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.pipeline.SendDirect(r.Context(), req.Email, req.City)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeDispatch(w, oneShotStatus(res), fmt.Sprintf("Flood alert for %s sent to %s", res.City, req.Email), res)
}
