package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// FavoriteService handles the favorites of each user
type FavoriteService struct {
	repo   repositories.FavoriteRepository
	events providers.EventBus
	now    func() time.Time
}

// NewFavoriteService creates a new favorite service. events may be nil, in
// which case no favorite events are published.
func NewFavoriteService(repo repositories.FavoriteRepository, events providers.EventBus) *FavoriteService {
	return &FavoriteService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// List returns the favorites of a user
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*entities.FavoritePlace, error) {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// IsFavorite reports whether the user saved the place
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, placeID string) (bool, error) {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return false, err
	}
	_, err := s.repo.Get(ctx, userID, placeID)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Add saves a place as favorite of fav.UserID
func (s *FavoriteService) Add(ctx context.Context, fav *entities.FavoritePlace) error {
	if err := fav.Validate(); err != nil {
		return err
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Create(ctx, fav); err != nil {
		return err
	}

	s.publish(ctx, entities.FavoriteAdded, fav)
	return nil
}

// Remove deletes a favorite of the user
func (s *FavoriteService) Remove(ctx context.Context, userID, placeID string) error {
	if err := requireFields(field{"userId", userID != ""}); err != nil {
		return err
	}

	fav, err := s.repo.Get(ctx, userID, placeID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, placeID); err != nil {
		return err
	}

	s.publish(ctx, entities.FavoriteRemoved, fav)
	return nil
}

// publish logs and drops publish failures.
func (s *FavoriteService) publish(ctx context.Context, eventType entities.FavoriteEventType, fav *entities.FavoritePlace) {
	if s.events == nil {
		return
	}
	event := &entities.FavoriteEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		UserID:    fav.UserID,
		PlaceID:   fav.ID,
		PlaceName: fav.Name,
		PlaceType: fav.Type,
		Timestamp: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, providers.EventChannelFavorites, event); err != nil {
		log.Warn().Err(err).Str("user_id", fav.UserID).Str("place_id", fav.ID).Msg("Failed to publish favorite event")
	}
}
