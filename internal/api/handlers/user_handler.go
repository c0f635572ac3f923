package handlers

import (
	"net/http"

	"github.com/homestay-platform/backend/internal/api/middleware"
	"github.com/homestay-platform/backend/internal/application/services"
	"github.com/homestay-platform/backend/internal/domain/entities"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	facade *services.Facade
}

// NewUserHandler creates a new user handler
func NewUserHandler(facade *services.Facade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Register handles POST /api/v1/users. The endpoint is public and always
// creates a regular account; admins are promoted through an update.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	user, err := h.facade.RegisterUser(r.Context(), req.FirstName, req.LastName, req.Email, req.Password, false)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.facade.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.facade.ListUsers(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// UpdateUser handles PUT /api/v1/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var patch entities.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithAppError(w, err)
		return
	}

	user, err := h.facade.UpdateUser(r.Context(), identity, r.PathValue("id"), patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.facade.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
