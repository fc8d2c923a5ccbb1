package entities

// PlaceType is the category of a place that can be favorited, rated or reviewed.
type PlaceType string

const (
	PlaceRestaurant PlaceType = "restaurant"
	PlaceHotel      PlaceType = "hotel"
	PlaceActivity   PlaceType = "activity"
	PlaceCity       PlaceType = "city"
)

// Valid reports whether t is a known place type.
func (t PlaceType) Valid() bool {
	switch t {
	case PlaceRestaurant, PlaceHotel, PlaceActivity, PlaceCity:
		return true
	}
	return false
}

// Favoritable reports whether places of this type can be saved as favorites.
func (t PlaceType) Favoritable() bool {
	return t == PlaceRestaurant || t == PlaceHotel || t == PlaceActivity
}

// PlaceKey identifies one place across the ratings and reviews stores.
type PlaceKey struct {
	PlaceID   string
	PlaceType PlaceType
}
