package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/adapters/memory"
	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func newTestReview(t *testing.T, userID, placeID string) *entities.Review {
	t.Helper()
	review, err := entities.NewReview("Great stay", 4, userID, placeID)
	require.NoError(t, err)
	return review
}

func TestReviewStore_CreateAndGet(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	review := newTestReview(t, "user-1", "place-1")
	require.NoError(t, store.Create(ctx, review))

	got, err := store.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.Text, got.Text)

	byPair, err := store.GetByUserAndPlace(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.Equal(t, review.ID, byPair.ID)

	_, err = store.GetByUserAndPlace(ctx, "user-1", "place-2")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReviewStore_DuplicatePair(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-1")))
	err := store.Create(ctx, newTestReview(t, "user-1", "place-1"))
	assert.True(t, apperrors.IsConflict(err))

	// same user, other place is fine
	assert.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-2")))
}

func TestReviewStore_DeleteFreesPair(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	review := newTestReview(t, "user-1", "place-1")
	require.NoError(t, store.Create(ctx, review))
	require.NoError(t, store.Delete(ctx, review.ID))

	assert.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-1")))
}

func TestReviewStore_ListFilters(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-1")))
	require.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-2")))
	require.NoError(t, store.Create(ctx, newTestReview(t, "user-2", "place-1")))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byPlace, err := store.ListByPlace(ctx, "place-1")
	require.NoError(t, err)
	assert.Len(t, byPlace, 2)

	byUser, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

func TestReviewStore_BulkDeletes(t *testing.T) {
	store := memory.NewReviewStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-1")))
	require.NoError(t, store.Create(ctx, newTestReview(t, "user-2", "place-1")))
	require.NoError(t, store.Create(ctx, newTestReview(t, "user-1", "place-2")))

	removed, err := store.DeleteByPlace(ctx, "place-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = store.DeleteByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
