package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func TestNewReview_Valid(t *testing.T) {
	review, err := entities.NewReview("Lovely stay", 5, "user-1", "place-1")
	require.NoError(t, err)

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "user-1", review.UserID)
	assert.Equal(t, "place-1", review.PlaceID)
}

func TestNewReview_Invalid(t *testing.T) {
	_, err := entities.NewReview("", 3, "user-1", "place-1")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewReview("text", 0, "user-1", "place-1")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewReview("text", 6, "user-1", "place-1")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewReview("text", 3, "", "place-1")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewReview("text", 3, "user-1", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestReviewPatch_Apply(t *testing.T) {
	review, err := entities.NewReview("Lovely stay", 5, "user-1", "place-1")
	require.NoError(t, err)

	rating := 3
	updated, err := entities.ReviewPatch{Rating: &rating}.Apply(review)
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Lovely stay", updated.Text)
	// author and place never move
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, "place-1", updated.PlaceID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewPatch_ApplyInvalid(t *testing.T) {
	review, err := entities.NewReview("Lovely stay", 5, "user-1", "place-1")
	require.NoError(t, err)

	bad := 0
	_, err = entities.ReviewPatch{Rating: &bad}.Apply(review)
	assert.True(t, apperrors.IsValidation(err))
}
