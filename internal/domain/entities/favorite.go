package entities

import "time"

// FavoritePlace is a place saved by one user. ID is the place id, so the
// natural key is (UserID, ID).
type FavoritePlace struct {
	ID        string    `json:"id" db:"place_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Type      PlaceType `json:"type" db:"place_type"`
	Image     string    `json:"image" db:"image"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
