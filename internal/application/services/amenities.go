package services

import (
	"context"

	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// CreateAmenity stores a new amenity with a unique name. Admin gating
// happens in the middleware, not here.
func (f *Facade) CreateAmenity(ctx context.Context, name string) (*entities.Amenity, error) {
	amenity, err := entities.NewAmenity(name)
	if err != nil {
		return nil, err
	}

	if _, err := f.amenityRepo.GetByName(ctx, amenity.Name); err == nil {
		return nil, apperrors.NewConflictError("amenity name already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	if err := f.amenityRepo.Create(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// GetAmenity retrieves a single amenity by id.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*entities.Amenity, error) {
	return f.amenityRepo.GetByID(ctx, id)
}

// ListAmenities retrieves all amenities.
func (f *Facade) ListAmenities(ctx context.Context) ([]*entities.Amenity, error) {
	return f.amenityRepo.List(ctx)
}

// UpdateAmenity applies a patch to an amenity, re-checking name uniqueness
// when the name changes.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, patch entities.AmenityPatch) (*entities.Amenity, error) {
	existing, err := f.amenityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(existing)
	if err != nil {
		return nil, err
	}

	if patch.ChangesName(existing) {
		if _, err := f.amenityRepo.GetByName(ctx, updated.Name); err == nil {
			return nil, apperrors.NewConflictError("amenity name already exists")
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	if err := f.amenityRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAmenity removes an amenity and detaches it from every place first.
func (f *Facade) DeleteAmenity(ctx context.Context, id string) error {
	if _, err := f.amenityRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := f.placeRepo.RemoveAmenityFromAll(ctx, id); err != nil {
		return err
	}
	return f.amenityRepo.Delete(ctx, id)
}
