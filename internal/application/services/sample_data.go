package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
)

type sampleRating struct {
	placeID   string
	placeType entities.PlaceType
	userID    string
	userName  string
	rating    int
	daysAgo   int
}

var sampleRatings = []sampleRating{
	{"peru-cook", entities.PlaceRestaurant, "user1", "María González", 5, 5},
	{"peru-cook", entities.PlaceRestaurant, "user2", "Juan Pérez", 4, 12},
	{"peru-cook", entities.PlaceRestaurant, "user3", "Ana Rodríguez", 5, 8},
	{"chuleta-don-carlos", entities.PlaceRestaurant, "user1", "María González", 5, 3},
	{"chuleta-don-carlos", entities.PlaceRestaurant, "user4", "Carlos Mendoza", 4, 7},
	{"hotel-guadalajara", entities.PlaceHotel, "user2", "Juan Pérez", 5, 15},
	{"hotel-guadalajara", entities.PlaceHotel, "user5", "Laura Ramírez", 4, 20},
	{"visita-a-la-basilica", entities.PlaceActivity, "user3", "Ana Rodríguez", 5, 2},
	{"visita-a-la-basilica", entities.PlaceActivity, "user6", "Patricia Londoño", 5, 6},
}

// SampleRatings returns the demo ratings dated relative to now
func SampleRatings(now time.Time) []*entities.Rating {
	out := make([]*entities.Rating, 0, len(sampleRatings))
	for _, s := range sampleRatings {
		out = append(out, &entities.Rating{
			ID:        uuid.New().String(),
			PlaceID:   s.placeID,
			PlaceType: s.placeType,
			UserID:    s.userID,
			UserName:  s.userName,
			Rating:    s.rating,
			Date:      now.Add(-time.Duration(s.daysAgo) * 24 * time.Hour).UTC(),
		})
	}
	return out
}

// SeedRatings upserts the demo ratings. Running it twice leaves one rating
// per user and place.
func SeedRatings(ctx context.Context, repo repositories.RatingRepository, now time.Time) error {
	ratings := SampleRatings(now)
	for _, r := range ratings {
		if _, err := repo.Upsert(ctx, r); err != nil {
			return err
		}
	}
	log.Info().Int("ratings", len(ratings)).Msg("Sample ratings loaded")
	return nil
}
