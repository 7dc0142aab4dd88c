package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	"github.com/rajasatyajit/FloodAlert/internal/models"
)

const maxSafePlaces = 10

func (h *Handler) citiesHandler(w http.ResponseWriter, r *http.Request) {
	list := cities.SupportedCities()
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"cities": list,
		"count":  len(list),
	})
}

// riskHandler handles GET /risk/{city}. Unknown cities are low risk, never 404.
func (h *Handler) riskHandler(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	key := cities.Normalize(city)
	level := h.resolver.Resolve(key)

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"city":           city,
		"canonical_city": key,
		"risk_level":     level,
		"known":          h.resolver.Known(key),
		"requires_alert": level.RequiresAlert(),
	})
}

// riskByLevelHandler handles GET /risk?level=high.
func (h *Handler) riskByLevelHandler(w http.ResponseWriter, r *http.Request) {
	level, ok := models.ParseRiskLevel(r.URL.Query().Get("level"))
	if !ok {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "level must be low, moderate or high")
		return
	}
	list := h.resolver.ByLevel(level)
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"risk_level": level,
		"cities":     list,
		"count":      len(list),
	})
}

// safePlacesHandler handles GET /safe-places/{city}?limit=N.
func (h *Handler) safePlacesHandler(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	limit := h.alerts.TopN
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxSafePlaces {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "limit must be between 1 and 10")
			return
		}
		limit = n
	}

	key := cities.Normalize(city)
	_, hasCoords := h.ranker.Coordinates(key)
	places := h.ranker.Rank(key, limit)

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"city":            city,
		"canonical_city":  key,
		"has_coordinates": hasCoords,
		"places":          places,
	})
}
