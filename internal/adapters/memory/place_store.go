package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// PlaceStore implements PlaceRepository over in-process maps, including the
// place-amenity association. Amenity rows are resolved through the amenity
// store, mirroring the join performed by the Postgres adapter.
type PlaceStore struct {
	mu        sync.RWMutex
	places    map[string]entities.Place
	amenities *AmenityStore
	// placeID -> ordered amenity IDs
	links map[string][]string
}

// NewPlaceStore creates an empty in-memory place store.
func NewPlaceStore(amenities *AmenityStore) *PlaceStore {
	return &PlaceStore{
		places:    make(map[string]entities.Place),
		amenities: amenities,
		links:     make(map[string][]string),
	}
}

var _ repositories.PlaceRepository = (*PlaceStore)(nil)

// Create inserts a new place.
func (s *PlaceStore) Create(ctx context.Context, place *entities.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places[place.ID] = *place
	return nil
}

// GetByID retrieves a place by ID.
func (s *PlaceStore) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	place, ok := s.places[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	return &place, nil
}

// List retrieves all places ordered by creation time.
func (s *PlaceStore) List(ctx context.Context) ([]*entities.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places := make([]*entities.Place, 0, len(s.places))
	for _, place := range s.places {
		p := place
		places = append(places, &p)
	}
	sortByCreation(places, func(p *entities.Place) (string, int64) { return p.ID, p.CreatedAt.UnixNano() })
	return places, nil
}

// ListByOwner retrieves places owned by a user.
func (s *PlaceStore) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places := make([]*entities.Place, 0)
	for _, place := range s.places {
		if place.OwnerID == ownerID {
			p := place
			places = append(places, &p)
		}
	}
	sortByCreation(places, func(p *entities.Place) (string, int64) { return p.ID, p.CreatedAt.UnixNano() })
	return places, nil
}

// Update replaces a place record.
func (s *PlaceStore) Update(ctx context.Context, place *entities.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[place.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", place.ID))
	}
	s.places[place.ID] = *place
	return nil
}

// Delete removes a place and its amenity associations.
func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	delete(s.places, id)
	delete(s.links, id)
	return nil
}

// SetAmenities replaces the amenity association set of a place.
func (s *PlaceStore) SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[placeID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", placeID))
	}
	ids := make([]string, 0, len(amenityIDs))
	seen := make(map[string]bool, len(amenityIDs))
	for _, amenityID := range amenityIDs {
		if seen[amenityID] {
			continue
		}
		seen[amenityID] = true
		ids = append(ids, amenityID)
	}
	s.links[placeID] = ids
	return nil
}

// ListAmenities retrieves the amenities associated with a place.
func (s *PlaceStore) ListAmenities(ctx context.Context, placeID string) ([]*entities.Amenity, error) {
	s.mu.RLock()
	ids, ok := s.links[placeID], true
	if _, exists := s.places[placeID]; !exists {
		ok = false
	}
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", placeID))
	}

	amenities := make([]*entities.Amenity, 0, len(ids))
	for _, id := range ids {
		if amenity, found := s.amenities.get(id); found {
			a := amenity
			amenities = append(amenities, &a)
		}
	}
	return amenities, nil
}

// RemoveAmenityFromAll removes an amenity from every place association.
func (s *PlaceStore) RemoveAmenityFromAll(ctx context.Context, amenityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for placeID, ids := range s.links {
		filtered := ids[:0]
		for _, id := range ids {
			if id != amenityID {
				filtered = append(filtered, id)
			}
		}
		s.links[placeID] = filtered
	}
	return nil
}
