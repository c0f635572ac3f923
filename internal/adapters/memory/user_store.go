// Package memory provides map-backed repository implementations used as the
// development storage backend. Data does not survive restarts. The stores are
// guarded by RWMutexes but offer none of the transactional guarantees of the
// Postgres adapters.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// UserStore implements UserRepository over an in-process map.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]entities.User
	byEmail map[string]string
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]entities.User),
		byEmail: make(map[string]string),
	}
}

var _ repositories.UserRepository = (*UserStore)(nil)

// Create inserts a new user, rejecting duplicate emails.
func (s *UserStore) Create(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("email %s is already registered", user.Email))
	}
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	user := s.users[id]
	return &user, nil
}

// List retrieves all users ordered by creation time.
func (s *UserStore) List(ctx context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entities.User, 0, len(s.users))
	for _, user := range s.users {
		u := user
		users = append(users, &u)
	}
	sortByCreation(users, func(u *entities.User) (string, int64) { return u.ID, u.CreatedAt.UnixNano() })
	return users, nil
}

// Update replaces a user record, re-checking email uniqueness.
func (s *UserStore) Update(ctx context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", user.ID))
	}
	if owner, taken := s.byEmail[user.Email]; taken && owner != user.ID {
		return apperrors.NewConflictError(fmt.Sprintf("email %s is already registered", user.Email))
	}
	if existing.Email != user.Email {
		delete(s.byEmail, existing.Email)
	}
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

// Delete removes a user.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	delete(s.byEmail, user.Email)
	delete(s.users, id)
	return nil
}

// sortByCreation orders entities by creation time with the ID as tiebreaker
// so listings are deterministic across backends.
func sortByCreation[T any](items []T, key func(T) (string, int64)) {
	sort.Slice(items, func(i, j int) bool {
		idI, createdI := key(items[i])
		idJ, createdJ := key(items[j])
		if createdI != createdJ {
			return createdI < createdJ
		}
		return idI < idJ
	})
}
