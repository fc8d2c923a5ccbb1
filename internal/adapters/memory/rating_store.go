package memory

import (
	"context"
	"sync"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// RatingStore implements repositories.RatingRepository in memory
type RatingStore struct {
	mu      sync.RWMutex
	ratings []entities.Rating
}

// NewRatingStore creates an empty rating store
func NewRatingStore() repositories.RatingRepository {
	return &RatingStore{}
}

func (s *RatingStore) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Rating, 0)
	for i := range s.ratings {
		if s.ratings[i].Place() == place {
			r := s.ratings[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *RatingStore) ListByUser(ctx context.Context, userID string) ([]*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Rating, 0)
	for i := range s.ratings {
		if s.ratings[i].UserID == userID {
			r := s.ratings[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *RatingStore) ListAll(ctx context.Context) ([]*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Rating, len(s.ratings))
	for i := range s.ratings {
		r := s.ratings[i]
		out[i] = &r
	}
	return out, nil
}

func (s *RatingStore) GetByID(ctx context.Context, id string) (*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.ratings {
		if s.ratings[i].ID == id {
			r := s.ratings[i]
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("rating not found")
}

func (s *RatingStore) GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(userID, place); i >= 0 {
		r := s.ratings[i]
		return &r, nil
	}
	return nil, apperrors.NewNotFoundError("rating not found")
}

func (s *RatingStore) Upsert(ctx context.Context, rating *entities.Rating) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(rating.UserID, rating.Place()); i >= 0 {
		existing := &s.ratings[i]
		existing.Rating = rating.Rating
		existing.Date = rating.Date
		*rating = *existing
		return false, nil
	}
	s.ratings = append(s.ratings, *rating)
	return true, nil
}

func (s *RatingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.ratings {
		if s.ratings[i].ID == id {
			s.ratings = append(s.ratings[:i], s.ratings[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("rating not found")
}

func (s *RatingStore) indexOf(userID string, place entities.PlaceKey) int {
	for i := range s.ratings {
		if s.ratings[i].UserID == userID && s.ratings[i].Place() == place {
			return i
		}
	}
	return -1
}
