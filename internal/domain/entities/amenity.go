package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

const maxAmenityNameLength = 50

// Amenity represents a bookable feature (WiFi, parking, ...) that places can
// be associated with. Names are unique across the platform.
type Amenity struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewAmenity builds a validated amenity with a generated ID and fresh timestamps.
func NewAmenity(name string) (*Amenity, error) {
	now := time.Now().UTC()
	amenity := &Amenity{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := amenity.Validate(); err != nil {
		return nil, err
	}
	return amenity, nil
}

// Validate checks the full record against the amenity invariants.
func (a *Amenity) Validate() error {
	if a.Name == "" || len(a.Name) > maxAmenityNameLength {
		return apperrors.NewValidationError("name must be between 1 and 50 characters")
	}
	return nil
}

// AmenityPatch is a sparse update: only non-nil fields are merged.
type AmenityPatch struct {
	Name *string `json:"name"`
}

// Apply merges the patch into a copy of existing, re-validates the full
// record, and refreshes UpdatedAt. The existing record is not modified.
func (p AmenityPatch) Apply(existing *Amenity) (*Amenity, error) {
	updated := *existing
	if p.Name != nil {
		updated.Name = strings.TrimSpace(*p.Name)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// ChangesName reports whether the patch would rename the amenity, which
// requires a uniqueness re-check.
func (p AmenityPatch) ChangesName(existing *Amenity) bool {
	return p.Name != nil && strings.TrimSpace(*p.Name) != existing.Name
}
