package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	"github.com/homestay-platform/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

var amenityColumns = []interface{}{"id", "name", "created_at", "updated_at"}

// AmenityAdapter implements the AmenityRepository interface over Postgres.
type AmenityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAmenityAdapter creates a new amenity adapter.
func NewAmenityAdapter(client *postgres.Client) repositories.AmenityRepository {
	return &AmenityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new amenity. A duplicate name surfaces as a Conflict error.
func (a *AmenityAdapter) Create(ctx context.Context, amenity *entities.Amenity) error {
	record := goqu.Record{
		"id":         amenity.ID,
		"name":       amenity.Name,
		"created_at": amenity.CreatedAt,
		"updated_at": amenity.UpdatedAt,
	}

	query, args, err := a.db.Insert("amenities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return wrapWriteError(err,
			fmt.Sprintf("amenity %q already exists", amenity.Name),
			"failed to create amenity")
	}

	return nil
}

// GetByID retrieves an amenity by ID.
func (a *AmenityAdapter) GetByID(ctx context.Context, id string) (*entities.Amenity, error) {
	query, args, err := a.db.Select(amenityColumns...).From("amenities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity query", err)
	}

	amenity, err := a.scanAmenity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get amenity", err)
	}
	return amenity, nil
}

// GetByName retrieves an amenity by its unique name.
func (a *AmenityAdapter) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	query, args, err := a.db.Select(amenityColumns...).From("amenities").
		Where(goqu.Ex{"name": name}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity query", err)
	}

	amenity, err := a.scanAmenity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("amenity %q not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get amenity", err)
	}
	return amenity, nil
}

// List retrieves all amenities ordered by creation time.
func (a *AmenityAdapter) List(ctx context.Context) ([]*entities.Amenity, error) {
	query, args, err := a.db.Select(amenityColumns...).From("amenities").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list amenities", err)
	}
	defer rows.Close()

	var amenities []*entities.Amenity
	for rows.Next() {
		amenity, err := a.scanAmenity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity", err)
		}
		amenities = append(amenities, amenity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate amenities", err)
	}
	return amenities, nil
}

// Update replaces an amenity record. A duplicate name surfaces as a Conflict
// error, an unknown id as NotFound.
func (a *AmenityAdapter) Update(ctx context.Context, amenity *entities.Amenity) error {
	record := goqu.Record{
		"name":       amenity.Name,
		"updated_at": amenity.UpdatedAt,
	}

	query, args, err := a.db.Update("amenities").Set(record).
		Where(goqu.Ex{"id": amenity.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteError(err,
			fmt.Sprintf("amenity %q already exists", amenity.Name),
			"failed to update amenity")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", amenity.ID))
	}
	return nil
}

// Delete removes an amenity. Its place associations are removed by the
// ON DELETE CASCADE constraint on the join table.
func (a *AmenityAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("amenities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete amenity", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("amenity with id %s not found", id))
	}
	return nil
}

func (a *AmenityAdapter) scanAmenity(row rowScanner) (*entities.Amenity, error) {
	amenity := &entities.Amenity{}
	err := row.Scan(
		&amenity.ID,
		&amenity.Name,
		&amenity.CreatedAt,
		&amenity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return amenity, nil
}
