package repositories

import (
	"context"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// FavoriteRepository defines the interface for favorite places, keyed by
// (userID, placeID).
type FavoriteRepository interface {
	// ListByUser returns the user's favorites in insertion order
	ListByUser(ctx context.Context, userID string) ([]*entities.FavoritePlace, error)

	// Get returns one favorite or a not found error
	Get(ctx context.Context, userID, placeID string) (*entities.FavoritePlace, error)

	// Create stores a favorite; a conflict error is returned if it already exists
	Create(ctx context.Context, favorite *entities.FavoritePlace) error

	// Delete removes a favorite or returns a not found error
	Delete(ctx context.Context, userID, placeID string) error
}
