package handlers

import (
	"net/http"

	"github.com/homestay-platform/backend/internal/api/middleware"
	"github.com/homestay-platform/backend/internal/application/services"
	"github.com/homestay-platform/backend/internal/domain/entities"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	facade *services.Facade
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(facade *services.Facade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// CreateReview handles POST /api/v1/reviews. The author is the caller.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Text    string `json:"text"`
		Rating  int    `json:"rating"`
		PlaceID string `json:"place_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	review, err := h.facade.CreateReview(r.Context(), identity, req.Text, req.Rating, req.PlaceID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// ListReviews handles GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviews(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ListPlaceReviews handles GET /api/v1/places/{id}/reviews
func (h *ReviewHandler) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviewsByPlace(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UpdateReview handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var patch entities.ReviewPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, err)
		return
	}

	review, err := h.facade.UpdateReview(r.Context(), identity, r.PathValue("id"), patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.facade.DeleteReview(r.Context(), identity, r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
