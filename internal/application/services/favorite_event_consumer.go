package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
)

// FavoriteEventConsumer turns favorite.added events into notifications
type FavoriteEventConsumer struct {
	bus           providers.EventBus
	notifications *NotificationService
}

// NewFavoriteEventConsumer creates a new consumer
func NewFavoriteEventConsumer(bus providers.EventBus, notifications *NotificationService) *FavoriteEventConsumer {
	return &FavoriteEventConsumer{bus: bus, notifications: notifications}
}

// Run subscribes to favorite events and blocks until ctx is done or the
// subscription closes
func (c *FavoriteEventConsumer) Run(ctx context.Context) error {
	events, err := c.bus.Subscribe(ctx, providers.EventChannelFavorites)
	if err != nil {
		return err
	}

	for event := range events {
		c.handle(ctx, event)
	}
	return nil
}

func (c *FavoriteEventConsumer) handle(ctx context.Context, event *entities.FavoriteEvent) {
	if event.Type != entities.FavoriteAdded {
		return
	}
	if _, err := c.notifications.FavoriteAdded(ctx, event.UserID, event.PlaceName, event.PlaceType); err != nil {
		log.Warn().Err(err).Str("event_id", event.ID).Str("user_id", event.UserID).Msg("Failed to notify favorite")
	}
}
