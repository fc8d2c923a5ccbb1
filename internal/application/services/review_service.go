package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
)

// ReviewService handles written reviews
type ReviewService struct {
	repo repositories.ReviewRepository
	now  func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
		now:  time.Now,
	}
}

// ListByPlace returns the reviews of a place
func (s *ReviewService) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Review, error) {
	if err := requireFields(
		field{"placeId", place.PlaceID != ""},
		field{"placeType", place.PlaceType != ""},
	); err != nil {
		return nil, err
	}
	if err := validatePlaceType(place.PlaceType); err != nil {
		return nil, err
	}
	return s.repo.ListByPlace(ctx, place)
}

// ListByUser returns the reviews a user wrote
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// UserReview returns the review a user wrote for a place
func (s *ReviewService) UserReview(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Review, error) {
	if err := requireFields(
		field{"placeId", place.PlaceID != ""},
		field{"placeType", place.PlaceType != ""},
		field{"userId", userID != ""},
	); err != nil {
		return nil, err
	}
	return s.repo.GetByUserAndPlace(ctx, userID, place)
}

// Create stores a new review; a second review by the same user for the same
// place is a conflict and leaves the first untouched.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}

	review.ID = uuid.New().String()
	review.Date = s.now().UTC()
	return s.repo.Create(ctx, review)
}

// Update changes score and comment of a review owned by userID. An empty
// comment keeps the stored one.
func (s *ReviewService) Update(ctx context.Context, id, userID string, rating int, comment string) (*entities.Review, error) {
	if err := requireFields(
		field{"userId", userID != ""},
		field{"rating", rating != 0},
	); err != nil {
		return nil, err
	}
	if err := validateScore(rating); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(review.UserID, userID, "reviews"); err != nil {
		return nil, err
	}

	review.Rating = rating
	if comment != "" {
		review.Comment = comment
	}
	review.Date = s.now().UTC()

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review owned by userID
func (s *ReviewService) Delete(ctx context.Context, id, userID string) error {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return err
	}
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(review.UserID, userID, "reviews"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
