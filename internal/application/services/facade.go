// Package services contains the application facade: every use case the API
// exposes goes through it, so cross-entity rules live in one place and the
// HTTP layer never touches a repository directly.
package services

import (
	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/domain/repositories"
)

// Facade coordinates the four repositories and the token manager behind a
// single application-level API. It is constructed once in main and shared
// by all handlers.
type Facade struct {
	userRepo    repositories.UserRepository
	placeRepo   repositories.PlaceRepository
	reviewRepo  repositories.ReviewRepository
	amenityRepo repositories.AmenityRepository
	tokens      *auth.TokenManager
}

// NewFacade creates a facade over the given repositories.
func NewFacade(
	userRepo repositories.UserRepository,
	placeRepo repositories.PlaceRepository,
	reviewRepo repositories.ReviewRepository,
	amenityRepo repositories.AmenityRepository,
	tokens *auth.TokenManager,
) *Facade {
	return &Facade{
		userRepo:    userRepo,
		placeRepo:   placeRepo,
		reviewRepo:  reviewRepo,
		amenityRepo: amenityRepo,
		tokens:      tokens,
	}
}
