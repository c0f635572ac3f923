package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func TestNewPlace_Valid(t *testing.T) {
	place, err := entities.NewPlace("Cozy loft", "Near the river", 120.0, 48.85, 2.35, "owner-1")
	require.NoError(t, err)

	assert.NotEmpty(t, place.ID)
	assert.Equal(t, "Cozy loft", place.Title)
	assert.Equal(t, "owner-1", place.OwnerID)
}

func TestNewPlace_Bounds(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
	}{
		{"empty title", func() error {
			_, err := entities.NewPlace("", "d", 10, 0, 0, "o")
			return err
		}},
		{"title too long", func() error {
			_, err := entities.NewPlace(strings.Repeat("t", 101), "d", 10, 0, 0, "o")
			return err
		}},
		{"description too long", func() error {
			_, err := entities.NewPlace("t", strings.Repeat("d", 501), 10, 0, 0, "o")
			return err
		}},
		{"negative price", func() error {
			_, err := entities.NewPlace("t", "d", -1, 0, 0, "o")
			return err
		}},
		{"latitude too low", func() error {
			_, err := entities.NewPlace("t", "d", 10, -90.01, 0, "o")
			return err
		}},
		{"latitude too high", func() error {
			_, err := entities.NewPlace("t", "d", 10, 90.01, 0, "o")
			return err
		}},
		{"longitude too low", func() error {
			_, err := entities.NewPlace("t", "d", 10, 0, -180.01, "o")
			return err
		}},
		{"longitude too high", func() error {
			_, err := entities.NewPlace("t", "d", 10, 0, 180.01, "o")
			return err
		}},
		{"missing owner", func() error {
			_, err := entities.NewPlace("t", "d", 10, 0, 0, "")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, apperrors.IsValidation(tc.fn()))
		})
	}
}

func TestNewPlace_BoundaryValuesAccepted(t *testing.T) {
	_, err := entities.NewPlace("t", "", 0, -90, 180, "o")
	assert.NoError(t, err)

	_, err = entities.NewPlace("t", "", 0, 90, -180, "o")
	assert.NoError(t, err)
}

func TestPlacePatch_Apply(t *testing.T) {
	place, err := entities.NewPlace("Cozy loft", "Near the river", 120.0, 48.85, 2.35, "owner-1")
	require.NoError(t, err)

	price := 99.0
	title := "Updated loft"
	updated, err := entities.PlacePatch{Title: &title, Price: &price}.Apply(place)
	require.NoError(t, err)

	assert.Equal(t, "Updated loft", updated.Title)
	assert.Equal(t, 99.0, updated.Price)
	assert.Equal(t, place.Description, updated.Description)
	assert.Equal(t, place.OwnerID, updated.OwnerID)
	assert.Equal(t, "Cozy loft", place.Title)
}

func TestPlacePatch_ApplyInvalid(t *testing.T) {
	place, err := entities.NewPlace("Cozy loft", "", 120.0, 0, 0, "owner-1")
	require.NoError(t, err)

	bad := -5.0
	_, err = entities.PlacePatch{Price: &bad}.Apply(place)
	assert.True(t, apperrors.IsValidation(err))
}
