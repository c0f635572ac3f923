package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/adapters/database"
	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	"github.com/homestay-platform/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

func setupAmenityAdapter(t *testing.T) (repositories.AmenityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewAmenityAdapter(postgres.NewClientWithDB(db)), mock
}

func TestAmenityAdapter_CreateConflict(t *testing.T) {
	adapter, mock := setupAmenityAdapter(t)

	amenity, err := entities.NewAmenity("Wi-Fi")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "amenities"`).
		WillReturnError(&pq.Error{Code: "23505"})

	err = adapter.Create(context.Background(), amenity)
	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAmenityAdapter_GetByName(t *testing.T) {
	adapter, mock := setupAmenityAdapter(t)

	amenity, err := entities.NewAmenity("Wi-Fi")
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
		AddRow(amenity.ID, amenity.Name, amenity.CreatedAt, amenity.UpdatedAt)
	mock.ExpectQuery(`SELECT .+ FROM "amenities" WHERE`).
		WillReturnRows(rows)

	got, err := adapter.GetByName(context.Background(), "Wi-Fi")
	require.NoError(t, err)
	assert.Equal(t, amenity.ID, got.ID)

	mock.ExpectQuery(`SELECT .+ FROM "amenities" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = adapter.GetByName(context.Background(), "Sauna")
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
