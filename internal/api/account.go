package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rajasatyajit/FloodAlert/internal/auth"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/internal/store"
)

type tokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, status int, u *models.User) {
	token, exp, err := h.issuer.Issue(*u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSONResponse(w, status, tokenResponse{Token: token, ExpiresAt: exp, User: u})
}

// signupHandler registers a new subscriber and returns a token.
func (h *Handler) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	reg := store.Registration{Email: req.Email, Name: req.Name, Phone: req.Phone, City: req.City}
	if err := reg.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	if _, err := h.users.FindByEmail(r.Context(), req.Email); err == nil {
		h.writeErrorResponse(w, r, http.StatusConflict, "email already registered, log in instead")
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		h.writeError(w, r, err)
		return
	}

	u, _, err := store.Register(r.Context(), h.users, reg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeToken(w, r, http.StatusCreated, u)
}

// loginHandler returns a token for a registered email.
func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		h.writeErrorResponse(w, r, http.StatusUnauthorized, "unknown email")
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !u.IsActive {
		h.writeErrorResponse(w, r, http.StatusForbidden, "account disabled")
		return
	}
	h.writeToken(w, r, http.StatusOK, u)
}

// meHandler returns the calling subscriber.
func (h *Handler) meHandler(w http.ResponseWriter, r *http.Request) {
	p := auth.GetPrincipal(r.Context())
	if p == nil {
		h.writeErrorResponse(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.users.FindByID(r.Context(), p.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, u)
}
