package services

import (
	"context"
	"fmt"

	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// CreatePlace stores a new place owned by the acting user. Every referenced
// amenity id must exist; a bad id fails the whole request as a validation
// error, matching how bad owner references are treated.
func (f *Facade) CreatePlace(ctx context.Context, actor auth.Identity, title, description string, price, latitude, longitude float64, amenityIDs []string) (*entities.Place, error) {
	if _, err := f.userRepo.GetByID(ctx, actor.UserID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("owner does not exist")
		}
		return nil, err
	}

	if err := f.checkAmenityIDs(ctx, amenityIDs); err != nil {
		return nil, err
	}

	place, err := entities.NewPlace(title, description, price, latitude, longitude, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := f.placeRepo.Create(ctx, place); err != nil {
		return nil, err
	}
	if len(amenityIDs) > 0 {
		if err := f.placeRepo.SetAmenities(ctx, place.ID, amenityIDs); err != nil {
			return nil, err
		}
	}
	return place, nil
}

// GetPlace builds the composite detail view: place, owner, amenities, and
// reviews. A missing owner fails the whole read rather than returning a
// partial record.
func (f *Facade) GetPlace(ctx context.Context, id string) (*entities.PlaceDetails, error) {
	place, err := f.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := f.userRepo.GetByID(ctx, place.OwnerID)
	if err != nil {
		return nil, err
	}

	amenities, err := f.placeRepo.ListAmenities(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := f.reviewRepo.ListByPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entities.PlaceDetails{
		Place:     *place,
		Owner:     owner,
		Amenities: amenities,
		Reviews:   reviews,
	}, nil
}

// ListPlaces retrieves all places.
func (f *Facade) ListPlaces(ctx context.Context) ([]*entities.Place, error) {
	return f.placeRepo.List(ctx)
}

// UpdatePlace applies a patch to a place the actor owns (or is admin over).
// A nil amenityIDs slice leaves the association set untouched; a non-nil
// slice replaces it, empty meaning "no amenities".
func (f *Facade) UpdatePlace(ctx context.Context, actor auth.Identity, id string, patch entities.PlacePatch, amenityIDs []string) (*entities.Place, error) {
	existing, err := f.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actor.UserID && !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("cannot modify a place you do not own")
	}

	updated, err := patch.Apply(existing)
	if err != nil {
		return nil, err
	}

	if amenityIDs != nil {
		if err := f.checkAmenityIDs(ctx, amenityIDs); err != nil {
			return nil, err
		}
	}

	if err := f.placeRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if amenityIDs != nil {
		if err := f.placeRepo.SetAmenities(ctx, id, amenityIDs); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// DeletePlace removes a place, its reviews, and its amenity links.
func (f *Facade) DeletePlace(ctx context.Context, actor auth.Identity, id string) error {
	existing, err := f.placeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != actor.UserID && !actor.IsAdmin {
		return apperrors.NewForbiddenError("cannot delete a place you do not own")
	}

	removed, err := f.reviewRepo.DeleteByPlace(ctx, id)
	if err != nil {
		return err
	}
	if err := f.placeRepo.Delete(ctx, id); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("place_id", id).
		Int("reviews_removed", removed).
		Msg("place deleted with cascade")
	return nil
}

// checkAmenityIDs verifies every id references a stored amenity.
func (f *Facade) checkAmenityIDs(ctx context.Context, amenityIDs []string) error {
	for _, amenityID := range amenityIDs {
		if _, err := f.amenityRepo.GetByID(ctx, amenityID); err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError(fmt.Sprintf("amenity %s does not exist", amenityID))
			}
			return err
		}
	}
	return nil
}
