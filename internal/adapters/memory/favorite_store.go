// Package memory holds the in-process record stores used when no database is
// configured. Records are kept in insertion order and found by linear scan;
// every method copies records in and out so callers never share memory with
// the store.
package memory

import (
	"context"
	"sync"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// FavoriteStore implements repositories.FavoriteRepository in memory
type FavoriteStore struct {
	mu        sync.RWMutex
	favorites []entities.FavoritePlace
}

// NewFavoriteStore creates an empty favorite store
func NewFavoriteStore() repositories.FavoriteRepository {
	return &FavoriteStore{}
}

func (s *FavoriteStore) ListByUser(ctx context.Context, userID string) ([]*entities.FavoritePlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.FavoritePlace, 0)
	for i := range s.favorites {
		if s.favorites[i].UserID == userID {
			fav := s.favorites[i]
			out = append(out, &fav)
		}
	}
	return out, nil
}

func (s *FavoriteStore) Get(ctx context.Context, userID, placeID string) (*entities.FavoritePlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(userID, placeID); i >= 0 {
		fav := s.favorites[i]
		return &fav, nil
	}
	return nil, apperrors.NewNotFoundError("favorite not found")
}

func (s *FavoriteStore) Create(ctx context.Context, favorite *entities.FavoritePlace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(favorite.UserID, favorite.ID) >= 0 {
		return apperrors.NewConflictError("this place is already in favorites")
	}
	s.favorites = append(s.favorites, *favorite)
	return nil
}

func (s *FavoriteStore) Delete(ctx context.Context, userID, placeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(userID, placeID)
	if i < 0 {
		return apperrors.NewNotFoundError("favorite not found")
	}
	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (s *FavoriteStore) indexOf(userID, placeID string) int {
	for i := range s.favorites {
		if s.favorites[i].UserID == userID && s.favorites[i].ID == placeID {
			return i
		}
	}
	return -1
}
