package repositories

import (
	"context"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// ListByPlace retrieves reviews for a place
	ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Review, error)

	// ListByUser retrieves reviews written by a user
	ListByUser(ctx context.Context, userID string) ([]*entities.Review, error)

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// GetByUserAndPlace retrieves the review a user wrote for a place
	GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Review, error)

	// Create creates a new review; a conflict error is returned when the
	// user already reviewed the place
	Create(ctx context.Context, review *entities.Review) error

	// Update updates a review
	Update(ctx context.Context, review *entities.Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id string) error
}
