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

var placeColumns = []interface{}{
	"id", "title", "description", "price", "latitude", "longitude",
	"owner_id", "created_at", "updated_at",
}

// PlaceAdapter implements the PlaceRepository interface over Postgres,
// including the place_amenities join table.
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter.
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new place.
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	record := goqu.Record{
		"id":          place.ID,
		"title":       place.Title,
		"description": place.Description,
		"price":       place.Price,
		"latitude":    place.Latitude,
		"longitude":   place.Longitude,
		"owner_id":    place.OwnerID,
		"created_at":  place.CreatedAt,
		"updated_at":  place.UpdatedAt,
	}

	query, args, err := a.db.Insert("places").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create place", err)
	}

	return nil
}

// GetByID retrieves a place by ID.
func (a *PlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	query, args, err := a.db.Select(placeColumns...).From("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place query", err)
	}

	place, err := a.scanPlace(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get place", err)
	}
	return place, nil
}

// List retrieves all places ordered by creation time.
func (a *PlaceAdapter) List(ctx context.Context) ([]*entities.Place, error) {
	ds := a.db.Select(placeColumns...).From("places").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	return a.queryPlaces(ctx, ds)
}

// ListByOwner retrieves places owned by a user.
func (a *PlaceAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Place, error) {
	ds := a.db.Select(placeColumns...).From("places").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	return a.queryPlaces(ctx, ds)
}

// Update replaces a place record. OwnerID is immutable and not written.
func (a *PlaceAdapter) Update(ctx context.Context, place *entities.Place) error {
	record := goqu.Record{
		"title":       place.Title,
		"description": place.Description,
		"price":       place.Price,
		"latitude":    place.Latitude,
		"longitude":   place.Longitude,
		"updated_at":  place.UpdatedAt,
	}

	query, args, err := a.db.Update("places").Set(record).
		Where(goqu.Ex{"id": place.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update place", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", place.ID))
	}
	return nil
}

// Delete removes a place. Its reviews and amenity links are removed by the
// ON DELETE CASCADE constraints.
func (a *PlaceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("places").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build place delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete place", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("place with id %s not found", id))
	}
	return nil
}

// SetAmenities replaces the amenity association set of a place inside a
// transaction so a partial write never survives.
func (a *PlaceAdapter) SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := a.db.Delete("place_amenities").
		Where(goqu.Ex{"place_id": placeID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity unlink query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to unlink amenities", err)
	}

	if len(amenityIDs) > 0 {
		records := make([]interface{}, 0, len(amenityIDs))
		seen := make(map[string]bool, len(amenityIDs))
		for _, amenityID := range amenityIDs {
			if seen[amenityID] {
				continue
			}
			seen[amenityID] = true
			records = append(records, goqu.Record{
				"place_id":   placeID,
				"amenity_id": amenityID,
			})
		}

		insertQuery, insertArgs, err := a.db.Insert("place_amenities").Rows(records...).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build amenity link query", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return apperrors.NewInternalError("failed to link amenities", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit amenity links", err)
	}
	return nil
}

// ListAmenities retrieves the amenities associated with a place.
func (a *PlaceAdapter) ListAmenities(ctx context.Context, placeID string) ([]*entities.Amenity, error) {
	query, args, err := a.db.Select(
		goqu.I("a.id"), goqu.I("a.name"), goqu.I("a.created_at"), goqu.I("a.updated_at"),
	).From(goqu.T("amenities").As("a")).
		Join(
			goqu.T("place_amenities").As("pa"),
			goqu.On(goqu.Ex{"pa.amenity_id": goqu.I("a.id")}),
		).
		Where(goqu.Ex{"pa.place_id": placeID}).
		Order(goqu.I("a.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenity join query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list place amenities", err)
	}
	defer rows.Close()

	var amenities []*entities.Amenity
	for rows.Next() {
		amenity := &entities.Amenity{}
		if err := rows.Scan(&amenity.ID, &amenity.Name, &amenity.CreatedAt, &amenity.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity", err)
		}
		amenities = append(amenities, amenity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate amenities", err)
	}
	return amenities, nil
}

// RemoveAmenityFromAll removes an amenity from every place association.
func (a *PlaceAdapter) RemoveAmenityFromAll(ctx context.Context, amenityID string) error {
	query, args, err := a.db.Delete("place_amenities").
		Where(goqu.Ex{"amenity_id": amenityID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build amenity unlink query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to unlink amenity", err)
	}
	return nil
}

func (a *PlaceAdapter) queryPlaces(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Place, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build place list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list places", err)
	}
	defer rows.Close()

	var places []*entities.Place
	for rows.Next() {
		place, err := a.scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate places", err)
	}
	return places, nil
}

func (a *PlaceAdapter) scanPlace(row rowScanner) (*entities.Place, error) {
	place := &entities.Place{}
	err := row.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Price,
		&place.Latitude,
		&place.Longitude,
		&place.OwnerID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return place, nil
}
