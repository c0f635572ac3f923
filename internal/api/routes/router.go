package routes

import (
	"net/http"

	"github.com/homestay-platform/backend/internal/api/handlers"
	"github.com/homestay-platform/backend/internal/api/middleware"
	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	placeHandler   *handlers.PlaceHandler
	reviewHandler  *handlers.ReviewHandler
	amenityHandler *handlers.AmenityHandler

	tokens  *auth.TokenManager
	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	placeHandler *handlers.PlaceHandler,
	reviewHandler *handlers.ReviewHandler,
	amenityHandler *handlers.AmenityHandler,
	tokens *auth.TokenManager,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		authHandler:    authHandler,
		userHandler:    userHandler,
		placeHandler:   placeHandler,
		reviewHandler:  reviewHandler,
		amenityHandler: amenityHandler,
		tokens:         tokens,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	authed := middleware.RequireAuth(r.tokens)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(h))
	}

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/v1/auth/login", r.authHandler.Login)

	// User endpoints
	r.mux.HandleFunc("POST /api/v1/users", r.userHandler.Register)
	r.mux.Handle("GET /api/v1/users", authed(http.HandlerFunc(r.userHandler.ListUsers)))
	r.mux.Handle("GET /api/v1/users/{id}", authed(http.HandlerFunc(r.userHandler.GetUser)))
	r.mux.Handle("PUT /api/v1/users/{id}", authed(http.HandlerFunc(r.userHandler.UpdateUser)))
	r.mux.Handle("DELETE /api/v1/users/{id}", admin(r.userHandler.DeleteUser))

	// Place endpoints
	r.mux.HandleFunc("GET /api/v1/places", r.placeHandler.ListPlaces)
	r.mux.HandleFunc("GET /api/v1/places/{id}", r.placeHandler.GetPlace)
	r.mux.HandleFunc("GET /api/v1/places/{id}/reviews", r.reviewHandler.ListPlaceReviews)
	r.mux.Handle("POST /api/v1/places", authed(http.HandlerFunc(r.placeHandler.CreatePlace)))
	r.mux.Handle("PUT /api/v1/places/{id}", authed(http.HandlerFunc(r.placeHandler.UpdatePlace)))
	r.mux.Handle("DELETE /api/v1/places/{id}", authed(http.HandlerFunc(r.placeHandler.DeletePlace)))

	// Review endpoints
	r.mux.HandleFunc("GET /api/v1/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("GET /api/v1/reviews/{id}", r.reviewHandler.GetReview)
	r.mux.Handle("POST /api/v1/reviews", authed(http.HandlerFunc(r.reviewHandler.CreateReview)))
	r.mux.Handle("PUT /api/v1/reviews/{id}", authed(http.HandlerFunc(r.reviewHandler.UpdateReview)))
	r.mux.Handle("DELETE /api/v1/reviews/{id}", authed(http.HandlerFunc(r.reviewHandler.DeleteReview)))

	// Amenity endpoints (writes are admin-gated)
	r.mux.HandleFunc("GET /api/v1/amenities", r.amenityHandler.ListAmenities)
	r.mux.HandleFunc("GET /api/v1/amenities/{id}", r.amenityHandler.GetAmenity)
	r.mux.Handle("POST /api/v1/amenities", admin(r.amenityHandler.CreateAmenity))
	r.mux.Handle("PUT /api/v1/amenities/{id}", admin(r.amenityHandler.UpdateAmenity))
	r.mux.Handle("DELETE /api/v1/amenities/{id}", admin(r.amenityHandler.DeleteAmenity))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so preflights never hit auth
	handler = middleware.CORSMiddleware(handler)

	return handler
}
