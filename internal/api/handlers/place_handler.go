package handlers

import (
	"net/http"

	"github.com/homestay-platform/backend/internal/api/middleware"
	"github.com/homestay-platform/backend/internal/application/services"
	"github.com/homestay-platform/backend/internal/domain/entities"
)

// PlaceHandler handles place-related HTTP requests
type PlaceHandler struct {
	facade *services.Facade
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(facade *services.Facade) *PlaceHandler {
	return &PlaceHandler{facade: facade}
}

// CreatePlace handles POST /api/v1/places. The caller becomes the owner.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Latitude    float64  `json:"latitude"`
		Longitude   float64  `json:"longitude"`
		Amenities   []string `json:"amenities"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	place, err := h.facade.CreatePlace(r.Context(), identity, req.Title, req.Description, req.Price, req.Latitude, req.Longitude, req.Amenities)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, place)
}

// GetPlace handles GET /api/v1/places/{id}, returning the composite view
// with owner, amenities, and reviews.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	details, err := h.facade.GetPlace(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, details)
}

// ListPlaces handles GET /api/v1/places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.facade.ListPlaces(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}

// UpdatePlace handles PUT /api/v1/places/{id}. An omitted amenities field
// leaves the association set untouched.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		entities.PlacePatch
		Amenities []string `json:"amenities"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	place, err := h.facade.UpdatePlace(r.Context(), identity, r.PathValue("id"), req.PlacePatch, req.Amenities)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, place)
}

// DeletePlace handles DELETE /api/v1/places/{id}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.facade.DeletePlace(r.Context(), identity, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
