package repositories

import (
	"context"

	"github.com/homestay-platform/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	// Create inserts a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// GetByUserAndPlace retrieves the review a user wrote for a place,
	// or NotFound when none exists
	GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error)

	// List retrieves all reviews
	List(ctx context.Context) ([]*entities.Review, error)

	// ListByPlace retrieves reviews for a place
	ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error)

	// ListByUser retrieves reviews written by a user
	ListByUser(ctx context.Context, userID string) ([]*entities.Review, error)

	// Update replaces a review record
	Update(ctx context.Context, review *entities.Review) error

	// Delete removes a review
	Delete(ctx context.Context, id string) error

	// DeleteByPlace removes all reviews of a place, returning how many
	// rows were removed
	DeleteByPlace(ctx context.Context, placeID string) (int, error)

	// DeleteByUser removes all reviews written by a user, returning how
	// many rows were removed
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
