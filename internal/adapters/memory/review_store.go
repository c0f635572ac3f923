package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// ReviewStore implements ReviewRepository over in-process maps with a
// (user, place) uniqueness index.
type ReviewStore struct {
	mu      sync.RWMutex
	reviews map[string]entities.Review
	byPair  map[string]string
}

// NewReviewStore creates an empty in-memory review store.
func NewReviewStore() *ReviewStore {
	return &ReviewStore{
		reviews: make(map[string]entities.Review),
		byPair:  make(map[string]string),
	}
}

var _ repositories.ReviewRepository = (*ReviewStore)(nil)

func pairKey(userID, placeID string) string {
	return userID + "\x00" + placeID
}

// Create inserts a new review, rejecting a second review for the same
// (user, place) pair.
func (s *ReviewStore) Create(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(review.UserID, review.PlaceID)
	if _, exists := s.byPair[key]; exists {
		return apperrors.NewConflictError("user has already reviewed this place")
	}
	s.reviews[review.ID] = *review
	s.byPair[key] = review.ID
	return nil
}

// GetByID retrieves a review by ID.
func (s *ReviewStore) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return &review, nil
}

// GetByUserAndPlace retrieves the review a user wrote for a place.
func (s *ReviewStore) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPair[pairKey(userID, placeID)]
	if !ok {
		return nil, apperrors.NewNotFoundError("review not found for user and place")
	}
	review := s.reviews[id]
	return &review, nil
}

// List retrieves all reviews ordered by creation time.
func (s *ReviewStore) List(ctx context.Context) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*entities.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		r := review
		reviews = append(reviews, &r)
	}
	sortByCreation(reviews, func(r *entities.Review) (string, int64) { return r.ID, r.CreatedAt.UnixNano() })
	return reviews, nil
}

// ListByPlace retrieves reviews for a place.
func (s *ReviewStore) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	return s.listWhere(func(r *entities.Review) bool { return r.PlaceID == placeID })
}

// ListByUser retrieves reviews written by a user.
func (s *ReviewStore) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	return s.listWhere(func(r *entities.Review) bool { return r.UserID == userID })
}

func (s *ReviewStore) listWhere(match func(*entities.Review) bool) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*entities.Review, 0)
	for _, review := range s.reviews {
		r := review
		if match(&r) {
			reviews = append(reviews, &r)
		}
	}
	sortByCreation(reviews, func(r *entities.Review) (string, int64) { return r.ID, r.CreatedAt.UnixNano() })
	return reviews, nil
}

// Update replaces a review record.
func (s *ReviewStore) Update(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", review.ID))
	}
	s.reviews[review.ID] = *review
	return nil
}

// Delete removes a review.
func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	delete(s.byPair, pairKey(review.UserID, review.PlaceID))
	delete(s.reviews, id)
	return nil
}

// DeleteByPlace removes all reviews of a place.
func (s *ReviewStore) DeleteByPlace(ctx context.Context, placeID string) (int, error) {
	return s.deleteWhere(func(r *entities.Review) bool { return r.PlaceID == placeID }), nil
}

// DeleteByUser removes all reviews written by a user.
func (s *ReviewStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return s.deleteWhere(func(r *entities.Review) bool { return r.UserID == userID }), nil
}

func (s *ReviewStore) deleteWhere(match func(*entities.Review) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, review := range s.reviews {
		r := review
		if match(&r) {
			delete(s.byPair, pairKey(review.UserID, review.PlaceID))
			delete(s.reviews, id)
			removed++
		}
	}
	return removed
}
