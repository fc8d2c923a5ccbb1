package entities

import "time"

// Review is one user's written review of a place
type Review struct {
	ID        string    `json:"id" db:"id"`
	PlaceID   string    `json:"placeId" db:"place_id"`
	PlaceType PlaceType `json:"placeType" db:"place_type"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	Date      time.Time `json:"date" db:"date"`
}

// Place returns the key of the reviewed place.
func (r *Review) Place() PlaceKey {
	return PlaceKey{PlaceID: r.PlaceID, PlaceType: r.PlaceType}
}
