package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/postgres"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

var favoriteColumns = []interface{}{"place_id", "user_id", "name", "place_type", "image", "location", "created_at"}

// FavoriteAdapter implements the FavoriteRepository interface
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByUser retrieves the favorites of a user
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.FavoritePlace, error) {
	query, args, err := a.db.Select(favoriteColumns...).
		From("favorites").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	favorites := make([]*entities.FavoritePlace, 0)
	if err := a.client.X().SelectContext(ctx, &favorites, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	return favorites, nil
}

// Get retrieves one favorite of a user
func (a *FavoriteAdapter) Get(ctx context.Context, userID, placeID string) (*entities.FavoritePlace, error) {
	query, args, err := a.db.Select(favoriteColumns...).
		From("favorites").
		Where(goqu.Ex{"user_id": userID, "place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	favorite := &entities.FavoritePlace{}
	err = a.client.X().GetContext(ctx, favorite, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("favorite not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get favorite", err)
	}
	return favorite, nil
}

// Create creates a new favorite
func (a *FavoriteAdapter) Create(ctx context.Context, favorite *entities.FavoritePlace) error {
	query, args, err := a.db.Insert("favorites").Rows(goqu.Record{
		"place_id":   favorite.ID,
		"user_id":    favorite.UserID,
		"name":       favorite.Name,
		"place_type": favorite.Type,
		"image":      favorite.Image,
		"location":   favorite.Location,
		"created_at": favorite.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("this place is already in favorites")
		}
		return apperrors.NewInternalError("failed to create favorite", err)
	}
	return nil
}

// Delete deletes a favorite
func (a *FavoriteAdapter) Delete(ctx context.Context, userID, placeID string) error {
	query, args, err := a.db.Delete("favorites").
		Where(goqu.Ex{"user_id": userID, "place_id": placeID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execAffectingOne(ctx, a.client, query, args, "favorite")
}

// execAffectingOne runs a statement that must touch exactly one row.
func execAffectingOne(ctx context.Context, client *postgres.Client, query string, args []interface{}, what string) error {
	result, err := client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to write "+what, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return nil
}
