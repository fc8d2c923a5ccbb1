package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

func TestRating_Validate(t *testing.T) {
	valid := Rating{PlaceID: "peru-cook", PlaceType: PlaceRestaurant, UserID: "u1", UserName: "Ana", Rating: 4}

	tests := []struct {
		name    string
		mutate  func(r *Rating)
		message string
	}{
		{"valid", func(r *Rating) {}, ""},
		{"city rating", func(r *Rating) { r.PlaceType = PlaceCity }, ""},
		{"missing score and user", func(r *Rating) { r.Rating = 0; r.UserID = "" }, "missing required fields: userId, rating"},
		{"unknown place type", func(r *Rating) { r.PlaceType = "museum" }, "invalid placeType: museum"},
		{"score too high", func(r *Rating) { r.Rating = 6 }, "rating must be an integer between 1 and 5"},
		{"negative score", func(r *Rating) { r.Rating = -1 }, "rating must be an integer between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReview_ValidateSharesRatingRules(t *testing.T) {
	r := Review{PlaceID: "hotel-guadalajara", PlaceType: PlaceHotel, UserID: "u1", UserName: "Ana", Rating: 5}
	assert.NoError(t, r.Validate())

	r.Rating = 9
	assert.True(t, apperrors.Is(r.Validate(), apperrors.ErrorTypeValidation))
}

func TestFavoritePlace_Validate(t *testing.T) {
	f := FavoritePlace{ID: "peru-cook", Name: "Peru Cook", Type: PlaceRestaurant, Location: "Buga", UserID: "u1"}
	assert.NoError(t, f.Validate())

	city := f
	city.Type = PlaceCity
	err := city.Validate()
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "restaurant, hotel or activity")

	empty := FavoritePlace{Type: PlaceHotel}
	assert.Contains(t, empty.Validate().Error(), "missing required fields: id, name, location, userId")
}
