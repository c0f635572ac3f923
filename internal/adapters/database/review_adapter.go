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

var reviewColumns = []interface{}{
	"id", "text", "rating", "user_id", "place_id", "created_at", "updated_at",
}

// ReviewAdapter implements the ReviewRepository interface over Postgres. The
// (user_id, place_id) unique index backs the one-review-per-user-per-place
// rule.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new review. A second review for the same (user, place)
// pair surfaces as a Conflict error.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"text":       review.Text,
		"rating":     review.Rating,
		"user_id":    review.UserID,
		"place_id":   review.PlaceID,
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return wrapWriteError(err,
			"user has already reviewed this place",
			"failed to create review")
	}

	return nil
}

// GetByID retrieves a review by ID.
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	review, err := a.scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// GetByUserAndPlace retrieves the review a user wrote for a place.
func (a *ReviewAdapter) GetByUserAndPlace(ctx context.Context, userID, placeID string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"user_id": userID, "place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	review, err := a.scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("review not found for user and place")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// List retrieves all reviews ordered by creation time.
func (a *ReviewAdapter) List(ctx context.Context) ([]*entities.Review, error) {
	ds := a.db.Select(reviewColumns...).From("reviews").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	return a.queryReviews(ctx, ds)
}

// ListByPlace retrieves reviews for a place.
func (a *ReviewAdapter) ListByPlace(ctx context.Context, placeID string) ([]*entities.Review, error) {
	ds := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	return a.queryReviews(ctx, ds)
}

// ListByUser retrieves reviews written by a user.
func (a *ReviewAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	ds := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	return a.queryReviews(ctx, ds)
}

// Update replaces a review record. UserID and PlaceID are immutable and not
// written.
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"text":       review.Text,
		"rating":     review.Rating,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Update("reviews").Set(record).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", review.ID))
	}
	return nil
}

// Delete removes a review.
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return nil
}

// DeleteByPlace removes all reviews of a place.
func (a *ReviewAdapter) DeleteByPlace(ctx context.Context, placeID string) (int, error) {
	return a.deleteWhere(ctx, goqu.Ex{"place_id": placeID})
}

// DeleteByUser removes all reviews written by a user.
func (a *ReviewAdapter) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return a.deleteWhere(ctx, goqu.Ex{"user_id": userID})
}

func (a *ReviewAdapter) deleteWhere(ctx context.Context, where goqu.Ex) (int, error) {
	query, args, err := a.db.Delete("reviews").Where(where).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build review delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete reviews", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return int(rowsAffected), nil
}

func (a *ReviewAdapter) queryReviews(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Review, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review, err := a.scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}

func (a *ReviewAdapter) scanReview(row rowScanner) (*entities.Review, error) {
	review := &entities.Review{}
	err := row.Scan(
		&review.ID,
		&review.Text,
		&review.Rating,
		&review.UserID,
		&review.PlaceID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}
