package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
	redisclient "github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/redis"
)

// subscriberBuffer is how many favorite events a slow consumer may lag
// behind before delivery blocks
const subscriberBuffer = 64

// ErrBusClosed is returned by Subscribe after Close
var ErrBusClosed = errors.New("event bus closed")

// RedisEventBus carries favorite events over Redis Pub/Sub. Every
// subscription holds its own Redis connection.
type RedisEventBus struct {
	client *redisclient.Client

	mu     sync.Mutex
	subs   map[*redis.PubSub]struct{}
	closed bool
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client: client,
		subs:   make(map[*redis.PubSub]struct{}),
	}
}

// Publish sends a favorite event to every subscriber of channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.FavoriteEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}
	receivers, err := b.client.Client().Publish(ctx, channel, data).Result()
	if err != nil {
		return fmt.Errorf("failed to publish favorite event: %w", err)
	}

	log.Debug().
		Str("channel", channel).
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Str("place_id", event.PlaceID).
		Int64("receivers", receivers).
		Msg("Published favorite event")
	return nil
}

// Subscribe returns favorite events published on channel. The returned
// channel is closed once ctx is done or the bus is closed.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.FavoriteEvent, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBusClosed
	}
	pubsub := b.client.Client().Subscribe(ctx, channel)
	b.subs[pubsub] = struct{}{}
	b.mu.Unlock()

	// Wait for the subscription confirmation so no event published after
	// Subscribe returns is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		b.release(pubsub)
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan *entities.FavoriteEvent, subscriberBuffer)
	go b.forward(ctx, channel, pubsub, out)

	log.Info().Str("channel", channel).Msg("Subscribed to favorite events")
	return out, nil
}

func (b *RedisEventBus) forward(ctx context.Context, channel string, pubsub *redis.PubSub, out chan<- *entities.FavoriteEvent) {
	defer close(out)
	defer b.release(pubsub)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			event := new(entities.FavoriteEvent)
			if err := json.Unmarshal([]byte(msg.Payload), event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("Dropping malformed favorite event")
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// release closes one subscription once. Closing an already closed PubSub
// is harmless, so errors are only logged.
func (b *RedisEventBus) release(pubsub *redis.PubSub) {
	b.mu.Lock()
	_, tracked := b.subs[pubsub]
	delete(b.subs, pubsub)
	b.mu.Unlock()

	if !tracked {
		return
	}
	if err := pubsub.Close(); err != nil {
		log.Debug().Err(err).Msg("Closing favorite subscription")
	}
}

// Close ends every subscription. Their event channels are closed by the
// forwarding goroutines.
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	b.closed = true
	subs := make([]*redis.PubSub, 0, len(b.subs))
	for pubsub := range b.subs {
		subs = append(subs, pubsub)
	}
	b.subs = make(map[*redis.PubSub]struct{})
	b.mu.Unlock()

	var errs []error
	for _, pubsub := range subs {
		if err := pubsub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing event bus: %w", errors.Join(errs...))
	}
	log.Info().Int("subscriptions", len(subs)).Msg("Event bus closed")
	return nil
}
