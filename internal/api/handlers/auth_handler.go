package handlers

import (
	"net/http"

	"github.com/homestay-platform/backend/internal/application/services"
)

// AuthHandler handles login requests
type AuthHandler struct {
	facade *services.Facade
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(facade *services.Facade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	token, user, err := h.facade.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"user_id":      user.ID,
	})
}
