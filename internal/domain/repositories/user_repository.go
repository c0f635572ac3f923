package repositories

import (
	"context"

	"github.com/homestay-platform/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations. All methods
// return AppError values: NotFound for absent ids, Conflict for duplicate
// emails.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*entities.User, error)

	// Update replaces a user record
	Update(ctx context.Context, user *entities.User) error

	// Delete removes a user
	Delete(ctx context.Context, id string) error
}
