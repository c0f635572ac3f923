package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// Place represents a rentable property listed on the platform.
type Place struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PlaceDetails is the composite read view of a place: the row joined with
// its owner, amenities, and reviews.
type PlaceDetails struct {
	Place
	Owner     *User      `json:"owner"`
	Amenities []*Amenity `json:"amenities"`
	Reviews   []*Review  `json:"reviews"`
}

// NewPlace builds a validated place with a generated ID and fresh timestamps.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	now := time.Now().UTC()
	place := &Place{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := place.Validate(); err != nil {
		return nil, err
	}
	return place, nil
}

// Validate checks the full record against the place invariants.
func (p *Place) Validate() error {
	if p.Title == "" || len(p.Title) > maxTitleLength {
		return apperrors.NewValidationError("title must be between 1 and 100 characters")
	}
	if len(p.Description) > maxDescriptionLength {
		return apperrors.NewValidationError("description must be at most 500 characters")
	}
	if p.Price < 0 {
		return apperrors.NewValidationError("price must be a non-negative number")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90 degrees")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180 degrees")
	}
	if p.OwnerID == "" {
		return apperrors.NewValidationError("owner id is required")
	}
	return nil
}

// PlacePatch is a sparse update: only non-nil fields are merged. OwnerID is
// immutable and deliberately absent.
type PlacePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Apply merges the patch into a copy of existing, re-validates the full
// record, and refreshes UpdatedAt. The existing record is not modified.
func (p PlacePatch) Apply(existing *Place) (*Place, error) {
	updated := *existing
	if p.Title != nil {
		updated.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		updated.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		updated.Price = *p.Price
	}
	if p.Latitude != nil {
		updated.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		updated.Longitude = *p.Longitude
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}
