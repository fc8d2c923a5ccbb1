package entities

import "time"

// NotificationType represents the notification purpose
type NotificationType string

const (
	NotificationRating    NotificationType = "rating"
	NotificationReview    NotificationType = "review"
	NotificationFavorite  NotificationType = "favorite"
	NotificationBooking   NotificationType = "booking"
	NotificationPromotion NotificationType = "promotion"
	NotificationSystem    NotificationType = "system"
	NotificationWelcome   NotificationType = "welcome"
)

// NotificationPriority orders notifications for display
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is a message addressed to one user
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	Priority  NotificationPriority   `json:"priority"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"createdAt"`
	ReadAt    *time.Time             `json:"readAt"`
}

// NotificationSubscriber is a user registered for automatic promotions
type NotificationSubscriber struct {
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NotificationPage is one page of a user's notifications, newest first
type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	Total         int             `json:"total"`
	Unread        int             `json:"unread"`
	HasMore       bool            `json:"hasMore"`
}
