package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
)

// RatingService handles place ratings
type RatingService struct {
	repo repositories.RatingRepository
	now  func() time.Time
}

// NewRatingService creates a new rating service
func NewRatingService(repo repositories.RatingRepository) *RatingService {
	return &RatingService{
		repo: repo,
		now:  time.Now,
	}
}

// ListByPlace returns every rating of a place
func (s *RatingService) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Rating, error) {
	if err := validatePlaceType(place.PlaceType); err != nil {
		return nil, err
	}
	return s.repo.ListByPlace(ctx, place)
}

// ListByUser returns every rating a user gave
func (s *RatingService) ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error) {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Average aggregates the ratings of a place
func (s *RatingService) Average(ctx context.Context, place entities.PlaceKey) (*entities.RatingAverage, error) {
	ratings, err := s.ListByPlace(ctx, place)
	if err != nil {
		return nil, err
	}
	avg := ComputeAverage(place, ratings)
	return &avg, nil
}

// UserRating returns the rating a user gave a place
func (s *RatingService) UserRating(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Rating, error) {
	return s.repo.GetByUserAndPlace(ctx, userID, place)
}

// Submit creates the user's rating of a place or replaces the previous one.
// created reports which of the two happened.
func (s *RatingService) Submit(ctx context.Context, rating *entities.Rating) (bool, error) {
	if err := rating.Validate(); err != nil {
		return false, err
	}

	rating.ID = uuid.New().String()
	rating.Date = s.now().UTC()

	return s.repo.Upsert(ctx, rating)
}

// Delete removes a rating owned by userID
func (s *RatingService) Delete(ctx context.Context, id, userID string) error {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(existing.UserID, userID, "ratings"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Stats aggregates every stored rating
func (s *RatingService) Stats(ctx context.Context) (*entities.RatingStats, error) {
	ratings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entities.RatingStats{StatsByType: make(map[entities.PlaceType]entities.TypeStats)}
	places := make(map[entities.PlaceType]map[string]struct{})
	total := 0

	for _, r := range ratings {
		ts := stats.StatsByType[r.PlaceType]
		ts.Count++
		ts.TotalRating += r.Rating
		stats.StatsByType[r.PlaceType] = ts

		if places[r.PlaceType] == nil {
			places[r.PlaceType] = make(map[string]struct{})
		}
		places[r.PlaceType][r.PlaceID] = struct{}{}
		total += r.Rating
	}

	for t, ts := range stats.StatsByType {
		ts.AverageRating = roundOneDecimal(float64(ts.TotalRating) / float64(ts.Count))
		ts.UniquePlaces = len(places[t])
		stats.StatsByType[t] = ts
	}

	stats.TotalRatings = len(ratings)
	if len(ratings) > 0 {
		stats.AverageOverall = roundOneDecimal(float64(total) / float64(len(ratings)))
	}
	return stats, nil
}

// ComputeAverage builds the aggregate of a place's ratings. The mean is
// rounded to one decimal and each distribution bucket to a whole percent.
// No ratings yields a zeroed aggregate.
func ComputeAverage(place entities.PlaceKey, ratings []*entities.Rating) entities.RatingAverage {
	avg := entities.RatingAverage{
		PlaceID:   place.PlaceID,
		PlaceType: place.PlaceType,
	}
	if len(ratings) == 0 {
		return avg
	}

	counts := make(map[int]int, 5)
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		counts[r.Rating]++
	}

	n := float64(len(ratings))
	avg.TotalRatings = len(ratings)
	avg.AverageRating = roundOneDecimal(float64(sum) / n)
	avg.RatingDistribution = make(entities.RatingDistribution, 5)
	for score := 1; score <= 5; score++ {
		avg.RatingDistribution[score] = int(math.Round(float64(counts[score]) / n * 100))
	}
	return avg
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
