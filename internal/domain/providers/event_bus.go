package providers

import (
	"context"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// EventBus carries favorite events from the favorites service to the
// notifications service
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.FavoriteEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.FavoriteEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelFavorites is the channel for every favorite change
const EventChannelFavorites = "wheretogo:favorites"
