package services

import (
	"context"

	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// RegisterUser validates the password, hashes it, and stores a new user.
// Registration through the public endpoint always creates a regular user;
// the admin flag is only settable here when an administrator creates the
// account.
func (f *Facade) RegisterUser(ctx context.Context, firstName, lastName, email, password string, isAdmin bool) (*entities.User, error) {
	if err := entities.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := entities.NewUser(firstName, lastName, email, hash, isAdmin)
	if err != nil {
		return nil, err
	}

	if _, err := f.userRepo.GetByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.NewConflictError("email already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	if err := f.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser verifies credentials and issues a signed token. A wrong
// email and a wrong password are indistinguishable to the caller.
func (f *Facade) AuthenticateUser(ctx context.Context, email, password string) (string, *entities.User, error) {
	user, err := f.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := f.tokens.Generate(user)
	if err != nil {
		return "", nil, apperrors.NewInternalError("failed to issue token", err)
	}
	return token, user, nil
}

// GetUser retrieves a single user by id.
func (f *Facade) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return f.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves all users.
func (f *Facade) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return f.userRepo.List(ctx)
}

// UpdateUser applies a patch to a user. Only the user themselves or an
// administrator may update, and only an administrator may touch the admin
// flag. A new password is validated and re-hashed; an email change is
// re-checked for uniqueness before writing.
func (f *Facade) UpdateUser(ctx context.Context, actor auth.Identity, id string, patch entities.UserPatch) (*entities.User, error) {
	if actor.UserID != id && !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("cannot modify another user's account")
	}
	if patch.IsAdmin != nil && !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("only administrators can change the admin flag")
	}
	if patch.Password != nil {
		if err := entities.ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	existing, err := f.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(existing)
	if err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if patch.ChangesEmail(existing) {
		if _, err := f.userRepo.GetByEmail(ctx, updated.Email); err == nil {
			return nil, apperrors.NewConflictError("email already registered")
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	if err := f.userRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user together with everything hanging off them: the
// reviews they wrote, the places they own, and the reviews and amenity links
// of those places. Both storage backends see the same cascade because the
// facade drives it.
func (f *Facade) DeleteUser(ctx context.Context, id string) error {
	if _, err := f.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	logger := observability.LoggerFromContext(ctx)

	removedReviews, err := f.reviewRepo.DeleteByUser(ctx, id)
	if err != nil {
		return err
	}

	places, err := f.placeRepo.ListByOwner(ctx, id)
	if err != nil {
		return err
	}
	for _, place := range places {
		n, err := f.reviewRepo.DeleteByPlace(ctx, place.ID)
		if err != nil {
			return err
		}
		removedReviews += n
		if err := f.placeRepo.Delete(ctx, place.ID); err != nil {
			return err
		}
	}

	if err := f.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().
		Str("user_id", id).
		Int("places_removed", len(places)).
		Int("reviews_removed", removedReviews).
		Msg("user deleted with cascade")
	return nil
}
