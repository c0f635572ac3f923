package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/adapters/memory"
	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func newTestUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user, err := entities.NewUser("Test", "User", email, "hash", false)
	require.NoError(t, err)
	return user
}

func TestUserStore_CreateAndGet(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	user := newTestUser(t, "a@example.com")
	require.NoError(t, store.Create(ctx, user))

	got, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	byEmail, err := store.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserStore_GetMissing(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nope")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = store.GetByEmail(ctx, "nope@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestUser(t, "a@example.com")))
	err := store.Create(ctx, newTestUser(t, "a@example.com"))
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserStore_UpdateMovesEmailIndex(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	user := newTestUser(t, "a@example.com")
	require.NoError(t, store.Create(ctx, user))

	updated := *user
	updated.Email = "b@example.com"
	require.NoError(t, store.Update(ctx, &updated))

	_, err := store.GetByEmail(ctx, "a@example.com")
	assert.True(t, apperrors.IsNotFound(err))

	got, err := store.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserStore_UpdateEmailConflict(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	first := newTestUser(t, "a@example.com")
	second := newTestUser(t, "b@example.com")
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	moved := *second
	moved.Email = "a@example.com"
	assert.True(t, apperrors.IsConflict(store.Update(ctx, &moved)))
}

func TestUserStore_Delete(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	user := newTestUser(t, "a@example.com")
	require.NoError(t, store.Create(ctx, user))
	require.NoError(t, store.Delete(ctx, user.ID))

	_, err := store.GetByID(ctx, user.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// email is free for reuse after delete
	assert.NoError(t, store.Create(ctx, newTestUser(t, "a@example.com")))

	assert.True(t, apperrors.IsNotFound(store.Delete(ctx, "nope")))
}

func TestUserStore_ListOrderedByCreation(t *testing.T) {
	store := memory.NewUserStore()
	ctx := context.Background()

	first := newTestUser(t, "a@example.com")
	time.Sleep(2 * time.Millisecond)
	second := newTestUser(t, "b@example.com")

	// insert out of order
	require.NoError(t, store.Create(ctx, second))
	require.NoError(t, store.Create(ctx, first))

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}
