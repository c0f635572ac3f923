package services

import (
	"context"

	"github.com/homestay-platform/backend/internal/auth"
	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// CreateReview stores a review written by the actor for a place. Owners may
// not review their own places, and each user gets at most one review per
// place.
func (f *Facade) CreateReview(ctx context.Context, actor auth.Identity, text string, rating int, placeID string) (*entities.Review, error) {
	place, err := f.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID == actor.UserID {
		return nil, apperrors.NewValidationError("you cannot review your own place")
	}

	if _, err := f.reviewRepo.GetByUserAndPlace(ctx, actor.UserID, placeID); err == nil {
		return nil, apperrors.NewConflictError("you have already reviewed this place")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	review, err := entities.NewReview(text, rating, actor.UserID, placeID)
	if err != nil {
		return nil, err
	}

	if err := f.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReview retrieves a single review by id.
func (f *Facade) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	return f.reviewRepo.GetByID(ctx, id)
}

// ListReviews retrieves all reviews.
func (f *Facade) ListReviews(ctx context.Context) ([]*entities.Review, error) {
	return f.reviewRepo.List(ctx)
}

// ListReviewsByPlace retrieves the reviews of one place. The place itself
// must exist so a bad id is a 404 rather than an empty list.
func (f *Facade) ListReviewsByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	if _, err := f.placeRepo.GetByID(ctx, placeID); err != nil {
		return nil, err
	}
	return f.reviewRepo.ListByPlace(ctx, placeID)
}

// UpdateReview applies a patch to a review written by the actor (or by
// anyone, when the actor is admin).
func (f *Facade) UpdateReview(ctx context.Context, actor auth.Identity, id string, patch entities.ReviewPatch) (*entities.Review, error) {
	existing, err := f.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.UserID && !actor.IsAdmin {
		return nil, apperrors.NewForbiddenError("cannot modify a review you did not write")
	}

	updated, err := patch.Apply(existing)
	if err != nil {
		return nil, err
	}

	if err := f.reviewRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteReview removes a review written by the actor (or by anyone, when the
// actor is admin).
func (f *Facade) DeleteReview(ctx context.Context, actor auth.Identity, id string) error {
	existing, err := f.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.UserID && !actor.IsAdmin {
		return apperrors.NewForbiddenError("cannot delete a review you did not write")
	}
	return f.reviewRepo.Delete(ctx, id)
}
