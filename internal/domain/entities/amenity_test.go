package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/domain/entities"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func TestNewAmenity_Valid(t *testing.T) {
	amenity, err := entities.NewAmenity("  Wi-Fi  ")
	require.NoError(t, err)

	assert.NotEmpty(t, amenity.ID)
	assert.Equal(t, "Wi-Fi", amenity.Name)
}

func TestNewAmenity_Invalid(t *testing.T) {
	_, err := entities.NewAmenity("")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewAmenity("   ")
	assert.True(t, apperrors.IsValidation(err))

	_, err = entities.NewAmenity(strings.Repeat("a", 51))
	assert.True(t, apperrors.IsValidation(err))
}

func TestAmenityPatch_Apply(t *testing.T) {
	amenity, err := entities.NewAmenity("Wi-Fi")
	require.NoError(t, err)

	name := "Fast Wi-Fi"
	patch := entities.AmenityPatch{Name: &name}
	assert.True(t, patch.ChangesName(amenity))

	updated, err := patch.Apply(amenity)
	require.NoError(t, err)
	assert.Equal(t, "Fast Wi-Fi", updated.Name)
	assert.Equal(t, "Wi-Fi", amenity.Name)

	same := "Wi-Fi"
	assert.False(t, entities.AmenityPatch{Name: &same}.ChangesName(amenity))
}
