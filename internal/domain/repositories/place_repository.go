package repositories

import (
	"context"

	"github.com/homestay-platform/backend/internal/domain/entities"
)

// PlaceRepository defines the interface for place data operations, including
// the place-amenity association.
type PlaceRepository interface {
	// Create inserts a new place
	Create(ctx context.Context, place *entities.Place) error

	// GetByID retrieves a place by ID
	GetByID(ctx context.Context, id string) (*entities.Place, error)

	// List retrieves all places
	List(ctx context.Context) ([]*entities.Place, error)

	// ListByOwner retrieves places owned by a user
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Place, error)

	// Update replaces a place record
	Update(ctx context.Context, place *entities.Place) error

	// Delete removes a place and its amenity associations
	Delete(ctx context.Context, id string) error

	// SetAmenities replaces the amenity association set of a place
	SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error

	// ListAmenities retrieves the amenities associated with a place
	ListAmenities(ctx context.Context, placeID string) ([]*entities.Amenity, error)

	// RemoveAmenityFromAll removes an amenity from every place it is
	// associated with, used when the amenity itself is deleted
	RemoveAmenityFromAll(ctx context.Context, amenityID string) error
}
