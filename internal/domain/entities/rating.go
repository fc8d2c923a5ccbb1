package entities

import "time"

// Rating is one user's 1-5 score for a place
type Rating struct {
	ID        string    `json:"id" db:"id"`
	PlaceID   string    `json:"placeId" db:"place_id"`
	PlaceType PlaceType `json:"placeType" db:"place_type"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Date      time.Time `json:"date" db:"date"`
}

// Place returns the key of the rated place.
func (r *Rating) Place() PlaceKey {
	return PlaceKey{PlaceID: r.PlaceID, PlaceType: r.PlaceType}
}

// RatingDistribution maps each score 1-5 to its rounded share in percent
type RatingDistribution map[int]int

// RatingAverage is the aggregate of all ratings of one place
type RatingAverage struct {
	AverageRating      float64            `json:"averageRating"`
	TotalRatings       int                `json:"totalRatings"`
	PlaceID            string             `json:"placeId"`
	PlaceType          PlaceType          `json:"placeType"`
	RatingDistribution RatingDistribution `json:"ratingDistribution,omitempty"`
}

// TypeStats aggregates ratings of one place type
type TypeStats struct {
	Count         int     `json:"count"`
	TotalRating   int     `json:"totalRating"`
	AverageRating float64 `json:"averageRating"`
	UniquePlaces  int     `json:"uniquePlaces"`
}

// RatingStats aggregates the whole ratings store
type RatingStats struct {
	TotalRatings   int                     `json:"totalRatings"`
	AverageOverall float64                 `json:"averageOverall"`
	StatsByType    map[PlaceType]TypeStats `json:"statsByType"`
}
