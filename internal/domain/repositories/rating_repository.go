package repositories

import (
	"context"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// RatingRepository defines the interface for rating operations
type RatingRepository interface {
	// ListByPlace returns every rating of a place
	ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Rating, error)

	// ListByUser returns every rating a user gave
	ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error)

	// ListAll returns every stored rating
	ListAll(ctx context.Context) ([]*entities.Rating, error)

	// GetByID retrieves a rating by ID
	GetByID(ctx context.Context, id string) (*entities.Rating, error)

	// GetByUserAndPlace retrieves the rating a user gave a place
	GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Rating, error)

	// Upsert stores the rating, replacing the value and date of an existing
	// rating by the same user for the same place. On update the rating is
	// rewritten in place with the stored id. created reports which happened.
	Upsert(ctx context.Context, rating *entities.Rating) (created bool, err error)

	// Delete deletes a rating
	Delete(ctx context.Context, id string) error
}
