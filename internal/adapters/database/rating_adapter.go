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

var ratingColumns = []interface{}{"id", "place_id", "place_type", "user_id", "user_name", "rating", "date"}

// RatingAdapter implements the RatingRepository interface
type RatingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRatingAdapter creates a new rating adapter
func NewRatingAdapter(client *postgres.Client) repositories.RatingRepository {
	return &RatingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *RatingAdapter) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Rating, error) {
	return a.list(ctx, a.db.Select(ratingColumns...).
		From("ratings").
		Where(goqu.Ex{"place_id": place.PlaceID, "place_type": place.PlaceType}).
		Order(goqu.I("date").Asc()))
}

func (a *RatingAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error) {
	return a.list(ctx, a.db.Select(ratingColumns...).
		From("ratings").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("date").Asc()))
}

func (a *RatingAdapter) ListAll(ctx context.Context) ([]*entities.Rating, error) {
	return a.list(ctx, a.db.Select(ratingColumns...).From("ratings").Order(goqu.I("date").Asc()))
}

func (a *RatingAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Rating, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ratings := make([]*entities.Rating, 0)
	if err := a.client.X().SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list ratings", err)
	}
	return ratings, nil
}

func (a *RatingAdapter) GetByID(ctx context.Context, id string) (*entities.Rating, error) {
	return a.get(ctx, goqu.Ex{"id": id})
}

func (a *RatingAdapter) GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Rating, error) {
	return a.get(ctx, goqu.Ex{"user_id": userID, "place_id": place.PlaceID, "place_type": place.PlaceType})
}

func (a *RatingAdapter) get(ctx context.Context, where goqu.Ex) (*entities.Rating, error) {
	query, args, err := a.db.Select(ratingColumns...).From("ratings").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rating := &entities.Rating{}
	err = a.client.X().GetContext(ctx, rating, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("rating not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rating", err)
	}
	return rating, nil
}

// Upsert inserts the rating or overwrites value and date of the existing one.
// xmax is zero only for freshly inserted rows.
func (a *RatingAdapter) Upsert(ctx context.Context, rating *entities.Rating) (bool, error) {
	query, args, err := a.db.Insert("ratings").
		Rows(goqu.Record{
			"id":         rating.ID,
			"place_id":   rating.PlaceID,
			"place_type": rating.PlaceType,
			"user_id":    rating.UserID,
			"user_name":  rating.UserName,
			"rating":     rating.Rating,
			"date":       rating.Date,
		}).
		OnConflict(goqu.DoUpdate("user_id, place_id, place_type", goqu.Record{
			"rating": goqu.L("EXCLUDED.rating"),
			"date":   goqu.L("EXCLUDED.date"),
		})).
		Returning(goqu.C("id"), goqu.C("user_name"), goqu.L("(xmax = 0)").As("inserted")).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build upsert query", err)
	}

	var row struct {
		ID       string `db:"id"`
		UserName string `db:"user_name"`
		Inserted bool   `db:"inserted"`
	}
	if err := a.client.X().GetContext(ctx, &row, query, args...); err != nil {
		return false, apperrors.NewInternalError("failed to upsert rating", err)
	}

	rating.ID = row.ID
	rating.UserName = row.UserName
	return row.Inserted, nil
}

func (a *RatingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("ratings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execAffectingOne(ctx, a.client, query, args, "rating")
}
