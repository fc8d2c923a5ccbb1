package repositories

import (
	"context"
	"time"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	// Create stores notifications in one write
	Create(ctx context.Context, notifications ...*entities.Notification) error

	// ListByUser returns the user's notifications, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.Notification, error)

	// MarkRead marks one of the user's notifications as read. It returns a
	// not found error for an unknown id and a forbidden error when the
	// notification belongs to another user.
	MarkRead(ctx context.Context, id, userID string, at time.Time) (*entities.Notification, error)

	// MarkAllRead marks every unread notification of the user and returns how many changed
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int, error)

	// Delete removes one of the user's notifications, with the same errors
	// as MarkRead
	Delete(ctx context.Context, id, userID string) error

	// AddSubscriber registers a user for automatic notifications; added is
	// false when the user was already registered
	AddSubscriber(ctx context.Context, subscriber *entities.NotificationSubscriber) (added bool, err error)

	// ListSubscribers returns every registered user
	ListSubscribers(ctx context.Context) ([]*entities.NotificationSubscriber, error)
}
