package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/postgres"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

var reviewColumns = []interface{}{"id", "place_id", "place_type", "user_id", "user_name", "rating", "comment", "date"}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByPlace retrieves reviews for a place in the order they were written
func (a *ReviewAdapter) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Review, error) {
	return a.list(ctx, goqu.Ex{"place_id": place.PlaceID, "place_type": place.PlaceType})
}

func (a *ReviewAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID})
}

func (a *ReviewAdapter) list(ctx context.Context, where goqu.Ex) ([]*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).
		From("reviews").
		Where(where).
		Order(goqu.I("date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	reviews := make([]*entities.Review, 0)
	if err := a.client.X().SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	return reviews, nil
}

func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return a.get(ctx, goqu.Ex{"id": id})
}

func (a *ReviewAdapter) GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Review, error) {
	return a.get(ctx, goqu.Ex{"user_id": userID, "place_id": place.PlaceID, "place_type": place.PlaceType})
}

func (a *ReviewAdapter) get(ctx context.Context, where goqu.Ex) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).From("reviews").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review := &entities.Review{}
	err = a.client.X().GetContext(ctx, review, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("review not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Insert("reviews").Rows(goqu.Record{
		"id":         review.ID,
		"place_id":   review.PlaceID,
		"place_type": review.PlaceType,
		"user_id":    review.UserID,
		"user_name":  review.UserName,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"date":       review.Date,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("you have already reviewed this place")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// Update updates the score, comment and date of a review
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{
			"rating":  review.Rating,
			"comment": review.Comment,
			"date":    review.Date,
		}).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}
	return execAffectingOne(ctx, a.client, query, args, "review")
}

// Delete deletes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execAffectingOne(ctx, a.client, query, args, "review")
}
