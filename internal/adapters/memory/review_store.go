package memory

import (
	"context"
	"sync"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// ReviewStore implements repositories.ReviewRepository in memory
type ReviewStore struct {
	mu      sync.RWMutex
	reviews []entities.Review
}

// NewReviewStore creates an empty review store
func NewReviewStore() repositories.ReviewRepository {
	return &ReviewStore{}
}

func (s *ReviewStore) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Review, 0)
	for i := range s.reviews {
		if s.reviews[i].Place() == place {
			r := s.reviews[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *ReviewStore) ListByUser(ctx context.Context, userID string) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Review, 0)
	for i := range s.reviews {
		if s.reviews[i].UserID == userID {
			r := s.reviews[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

func (s *ReviewStore) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexByID(id); i >= 0 {
		r := s.reviews[i]
		return &r, nil
	}
	return nil, apperrors.NewNotFoundError("review not found")
}

func (s *ReviewStore) GetByUserAndPlace(ctx context.Context, userID string, place entities.PlaceKey) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.reviews {
		if s.reviews[i].UserID == userID && s.reviews[i].Place() == place {
			r := s.reviews[i]
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("review not found")
}

func (s *ReviewStore) Create(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reviews {
		if s.reviews[i].UserID == review.UserID && s.reviews[i].Place() == review.Place() {
			return apperrors.NewConflictError("you have already reviewed this place")
		}
	}
	s.reviews = append(s.reviews, *review)
	return nil
}

func (s *ReviewStore) Update(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(review.ID)
	if i < 0 {
		return apperrors.NewNotFoundError("review not found")
	}
	s.reviews[i] = *review
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return apperrors.NewNotFoundError("review not found")
	}
	s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
	return nil
}

func (s *ReviewStore) indexByID(id string) int {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			return i
		}
	}
	return -1
}
