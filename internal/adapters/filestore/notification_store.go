package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

type notificationDocument struct {
	Notifications []entities.Notification           `json:"notifications"`
	Users         []entities.NotificationSubscriber `json:"users"`
}

// NotificationStore implements repositories.NotificationRepository over one
// JSON document holding notifications and registered users
type NotificationStore struct {
	file *jsonFile[notificationDocument]
}

// NewNotificationStore opens the notifications file, creating an empty
// document when it does not exist.
func NewNotificationStore(path string) (*NotificationStore, error) {
	s := &NotificationStore{file: newJSONFile[notificationDocument](path)}
	if s.file.exists() {
		return s, nil
	}
	if err := s.file.update(func(doc *notificationDocument) error {
		doc.Notifications = []entities.Notification{}
		doc.Users = []entities.NotificationSubscriber{}
		return nil
	}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *NotificationStore) Create(ctx context.Context, notifications ...*entities.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return s.file.update(func(doc *notificationDocument) error {
		for _, n := range notifications {
			doc.Notifications = append(doc.Notifications, *n)
		}
		return nil
	})
}

func (s *NotificationStore) ListByUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	var out []*entities.Notification
	err := s.file.view(func(doc *notificationDocument) error {
		out = make([]*entities.Notification, 0)
		for i := range doc.Notifications {
			if doc.Notifications[i].UserID == userID {
				n := doc.Notifications[i]
				out = append(out, &n)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, err
}

func (s *NotificationStore) MarkRead(ctx context.Context, id, userID string, at time.Time) (*entities.Notification, error) {
	var updated *entities.Notification
	err := s.file.update(func(doc *notificationDocument) error {
		i, err := ownedNotification(doc, id, userID)
		if err != nil {
			return err
		}
		n := &doc.Notifications[i]
		n.Read = true
		n.ReadAt = &at
		cp := *n
		updated = &cp
		return nil
	})
	return updated, err
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string, at time.Time) (int, error) {
	count := 0
	err := s.file.update(func(doc *notificationDocument) error {
		for i := range doc.Notifications {
			n := &doc.Notifications[i]
			if n.UserID == userID && !n.Read {
				n.Read = true
				n.ReadAt = &at
				count++
			}
		}
		return nil
	})
	return count, err
}

func (s *NotificationStore) Delete(ctx context.Context, id, userID string) error {
	return s.file.update(func(doc *notificationDocument) error {
		i, err := ownedNotification(doc, id, userID)
		if err != nil {
			return err
		}
		doc.Notifications = append(doc.Notifications[:i], doc.Notifications[i+1:]...)
		return nil
	})
}

// ownedNotification finds a notification by id and checks it belongs to userID
func ownedNotification(doc *notificationDocument, id, userID string) (int, error) {
	for i := range doc.Notifications {
		if doc.Notifications[i].ID != id {
			continue
		}
		if doc.Notifications[i].UserID != userID {
			return -1, apperrors.NewForbiddenError("notification belongs to another user")
		}
		return i, nil
	}
	return -1, apperrors.NewNotFoundError("notification not found")
}

func (s *NotificationStore) AddSubscriber(ctx context.Context, subscriber *entities.NotificationSubscriber) (bool, error) {
	added := false
	err := s.file.update(func(doc *notificationDocument) error {
		for i := range doc.Users {
			if doc.Users[i].UserID == subscriber.UserID {
				return nil
			}
		}
		doc.Users = append(doc.Users, *subscriber)
		added = true
		return nil
	})
	return added, err
}

func (s *NotificationStore) ListSubscribers(ctx context.Context) ([]*entities.NotificationSubscriber, error) {
	var out []*entities.NotificationSubscriber
	err := s.file.view(func(doc *notificationDocument) error {
		out = make([]*entities.NotificationSubscriber, len(doc.Users))
		for i := range doc.Users {
			u := doc.Users[i]
			out[i] = &u
		}
		return nil
	})
	return out, err
}
