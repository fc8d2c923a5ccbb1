package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

const samplePlaceLocation = "Guadalajara de Buga"

func placeholderImage(text string) string {
	return fmt.Sprintf("/placeholder.svg?height=200&width=300&text=%s", url.QueryEscape(text))
}

// SampleFavorites are shown when the favorites service is down and nothing
// is stored locally.
func SampleFavorites(userID string) []entities.FavoritePlace {
	now := time.Now().UTC()
	place := func(id, name string, t entities.PlaceType) entities.FavoritePlace {
		return entities.FavoritePlace{
			ID:        id,
			UserID:    userID,
			Name:      name,
			Type:      t,
			Image:     placeholderImage(name),
			Location:  samplePlaceLocation,
			CreatedAt: now,
		}
	}
	return []entities.FavoritePlace{
		place("peru-cook", "Peru Cook", entities.PlaceRestaurant),
		place("hotel-guadalajara", "Hotel Guadalajara", entities.PlaceHotel),
		place("visita-a-la-basilica", "Visita a la Basílica", entities.PlaceActivity),
	}
}

// SampleRatings are shown for a place when the ratings service is down
func SampleRatings(place entities.PlaceKey) []entities.Rating {
	now := time.Now().UTC()
	return []entities.Rating{
		{ID: "mock-rating-1", PlaceID: place.PlaceID, PlaceType: place.PlaceType, UserID: "user1", UserName: "María González", Rating: 5, Date: now.AddDate(0, 0, -5)},
		{ID: "mock-rating-2", PlaceID: place.PlaceID, PlaceType: place.PlaceType, UserID: "user2", UserName: "Juan Pérez", Rating: 4, Date: now.AddDate(0, 0, -12)},
	}
}

// SampleReviews are shown for a place when the reviews service is down
func SampleReviews(place entities.PlaceKey) []entities.Review {
	now := time.Now().UTC()
	return []entities.Review{
		{
			ID: "sample1", PlaceID: place.PlaceID, PlaceType: place.PlaceType,
			UserID: "user1", UserName: "María López", Rating: 5,
			Comment: "¡Excelente lugar! La comida es deliciosa y el servicio muy amable.",
			Date:    now.AddDate(0, 0, -1),
		},
		{
			ID: "sample2", PlaceID: place.PlaceID, PlaceType: place.PlaceType,
			UserID: "user2", UserName: "Carlos Rodríguez", Rating: 4,
			Comment: "Muy buena experiencia. Recomendado para ocasiones especiales.",
			Date:    now.AddDate(0, 0, -2),
		},
	}
}
