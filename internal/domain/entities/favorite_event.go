package entities

import "time"

// FavoriteEventType distinguishes favorite lifecycle events
type FavoriteEventType string

const (
	FavoriteAdded   FavoriteEventType = "favorite.added"
	FavoriteRemoved FavoriteEventType = "favorite.removed"
)

// FavoriteEvent is published by the favorites service after a change
type FavoriteEvent struct {
	ID        string            `json:"id"`
	Type      FavoriteEventType `json:"type"`
	UserID    string            `json:"userId"`
	PlaceID   string            `json:"placeId"`
	PlaceName string            `json:"placeName"`
	PlaceType PlaceType         `json:"placeType"`
	Timestamp time.Time         `json:"timestamp"`
}
