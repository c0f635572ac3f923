package repositories

import (
	"context"

	"github.com/homestay-platform/backend/internal/domain/entities"
)

// AmenityRepository defines the interface for amenity data operations.
type AmenityRepository interface {
	// Create inserts a new amenity
	Create(ctx context.Context, amenity *entities.Amenity) error

	// GetByID retrieves an amenity by ID
	GetByID(ctx context.Context, id string) (*entities.Amenity, error)

	// GetByName retrieves an amenity by its unique name
	GetByName(ctx context.Context, name string) (*entities.Amenity, error)

	// List retrieves all amenities
	List(ctx context.Context) ([]*entities.Amenity, error)

	// Update replaces an amenity record
	Update(ctx context.Context, amenity *entities.Amenity) error

	// Delete removes an amenity
	Delete(ctx context.Context, id string) error
}
