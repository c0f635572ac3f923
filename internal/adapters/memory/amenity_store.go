package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// AmenityStore implements AmenityRepository over an in-process map.
type AmenityStore struct {
	mu        sync.RWMutex
	amenities map[string]entities.Amenity
	byName    map[string]string
}

// NewAmenityStore creates an empty in-memory amenity store.
func NewAmenityStore() *AmenityStore {
	return &AmenityStore{
		amenities: make(map[string]entities.Amenity),
		byName:    make(map[string]string),
	}
}

var _ repositories.AmenityRepository = (*AmenityStore)(nil)

// Create inserts a new amenity, rejecting duplicate names.
func (s *AmenityStore) Create(ctx context.Context, amenity *entities.Amenity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[amenity.Name]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("amenity %q already exists", amenity.Name))
	}
	s.amenities[amenity.ID] = *amenity
	s.byName[amenity.Name] = amenity.ID
	return nil
}

// GetByID retrieves an amenity by ID.
func (s *AmenityStore) GetByID(ctx context.Context, id string) (*entities.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amenity, ok := s.amenities[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	return &amenity, nil
}

// GetByName retrieves an amenity by its unique name.
func (s *AmenityStore) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity %q not found", name))
	}
	amenity := s.amenities[id]
	return &amenity, nil
}

// List retrieves all amenities ordered by creation time.
func (s *AmenityStore) List(ctx context.Context) ([]*entities.Amenity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amenities := make([]*entities.Amenity, 0, len(s.amenities))
	for _, amenity := range s.amenities {
		a := amenity
		amenities = append(amenities, &a)
	}
	sortByCreation(amenities, func(a *entities.Amenity) (string, int64) { return a.ID, a.CreatedAt.UnixNano() })
	return amenities, nil
}

// Update replaces an amenity record, re-checking name uniqueness.
func (s *AmenityStore) Update(ctx context.Context, amenity *entities.Amenity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.amenities[amenity.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", amenity.ID))
	}
	if owner, taken := s.byName[amenity.Name]; taken && owner != amenity.ID {
		return apperrors.NewConflictError(fmt.Sprintf("amenity %q already exists", amenity.Name))
	}
	if existing.Name != amenity.Name {
		delete(s.byName, existing.Name)
	}
	s.amenities[amenity.ID] = *amenity
	s.byName[amenity.Name] = amenity.ID
	return nil
}

// Delete removes an amenity.
func (s *AmenityStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	amenity, ok := s.amenities[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	delete(s.byName, amenity.Name)
	delete(s.amenities, id)
	return nil
}

// get resolves an amenity by id for PlaceStore association lookups.
func (s *AmenityStore) get(id string) (entities.Amenity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	amenity, ok := s.amenities[id]
	return amenity, ok
}
