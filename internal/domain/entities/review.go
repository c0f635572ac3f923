package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

// Review represents a user's rating of a place. A user may review a given
// place at most once.
type Review struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Rating    int       `json:"rating" db:"rating"`
	UserID    string    `json:"user_id" db:"user_id"`
	PlaceID   string    `json:"place_id" db:"place_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewReview builds a validated review with a generated ID and fresh timestamps.
func NewReview(text string, rating int, userID, placeID string) (*Review, error) {
	now := time.Now().UTC()
	review := &Review{
		ID:        uuid.New().String(),
		Text:      strings.TrimSpace(text),
		Rating:    rating,
		UserID:    userID,
		PlaceID:   placeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	return review, nil
}

// Validate checks the full record against the review invariants.
func (r *Review) Validate() error {
	if r.Text == "" {
		return apperrors.NewValidationError("review text is required")
	}
	if r.Rating < minRating || r.Rating > maxRating {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if r.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if r.PlaceID == "" {
		return apperrors.NewValidationError("place id is required")
	}
	return nil
}

// ReviewPatch is a sparse update: only non-nil fields are merged. UserID and
// PlaceID are immutable; a review cannot be moved to another author or place.
type ReviewPatch struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// Apply merges the patch into a copy of existing, re-validates the full
// record, and refreshes UpdatedAt. The existing record is not modified.
func (p ReviewPatch) Apply(existing *Review) (*Review, error) {
	updated := *existing
	if p.Text != nil {
		updated.Text = strings.TrimSpace(*p.Text)
	}
	if p.Rating != nil {
		updated.Rating = *p.Rating
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}
