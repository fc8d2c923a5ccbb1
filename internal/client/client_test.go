package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/memory"
	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/routes"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/client"
	"github.com/johanfuertv/WhereToGo-App/internal/client/syncer"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/pkg/config"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
	"github.com/johanfuertv/WhereToGo-App/pkg/retry"
)

type backends struct {
	favorites *httptest.Server
	ratings   *httptest.Server
	reviews   *httptest.Server
}

func startBackends(t *testing.T) *backends {
	t.Helper()
	b := &backends{
		favorites: httptest.NewServer(routes.NewRouter("favorites", nil, nil).Favorites(
			handlers.NewFavoriteHandler(services.NewFavoriteService(memory.NewFavoriteStore(), nil)))),
		ratings: httptest.NewServer(routes.NewRouter("ratings", nil, nil).Ratings(
			handlers.NewRatingHandler(services.NewRatingService(memory.NewRatingStore())))),
		reviews: httptest.NewServer(routes.NewRouter("reviews", nil, nil).Reviews(
			handlers.NewReviewHandler(services.NewReviewService(memory.NewReviewStore())))),
	}
	t.Cleanup(func() {
		b.favorites.Close()
		b.ratings.Close()
		b.reviews.Close()
	})
	return b
}

func closedURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func newClient(t *testing.T, favoritesURL, ratingsURL, reviewsURL, stateDir string) *client.Client {
	t.Helper()
	return client.New(config.ClientConfig{
		FavoritesURL:     favoritesURL + "/api",
		RatingsURL:       ratingsURL + "/api",
		ReviewsURL:       reviewsURL + "/api",
		AuthURL:          closedURL() + "/api",
		NotificationsURL: closedURL(),
		StateDir:         stateDir,
		HealthCooldown:   time.Minute,
		HealthTimeout:    time.Second,
		RequestTimeout:   time.Second,
	}, client.WithSyncerOptions(syncer.WithRetry(retry.Config{
		MaxAttempts:     1,
		InitialDelay:    time.Millisecond,
		MaxDelay:        time.Millisecond,
		BackoffFactor:   1,
		MaxTotalTimeout: time.Second,
	})))
}

func peruCook() entities.FavoritePlace {
	return entities.FavoritePlace{
		ID:       "peru-cook",
		Name:     "Peru Cook",
		Type:     entities.PlaceRestaurant,
		Location: "Guadalajara de Buga",
	}
}

func TestClient_FavoriteRoundTripOnline(t *testing.T) {
	ctx := context.Background()
	b := startBackends(t)
	c := newClient(t, b.favorites.URL, b.ratings.URL, b.reviews.URL, t.TempDir())

	favs := c.UserFavorites("u1")
	require.NoError(t, favs.Add(ctx, peruCook()))

	remote, err := c.Favorites.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, "u1", remote[0].UserID)

	ok, err := c.Favorites.IsFavorite(ctx, "u1", "peru-cook")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, favs.Remove(ctx, "peru-cook"))
	remote, err = c.Favorites.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, remote)
}

func TestClient_FavoriteOfflineThenReconciled(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	down := closedURL()

	offline := newClient(t, down, down, down, dir)
	favs := offline.UserFavorites("u1")
	res, err := favs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncer.SourceFallback, res.Source)
	assert.Len(t, res.Data, 3)

	require.NoError(t, favs.Add(ctx, peruCook()))
	assert.True(t, favs.Has("peru-cook"))

	res, err = newClient(t, down, down, down, dir).UserFavorites("u1").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncer.SourceLocal, res.Source)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Peru Cook", res.Data[0].Name)

	b := startBackends(t)
	online := newClient(t, b.favorites.URL, b.ratings.URL, b.reviews.URL, dir)
	res, err = online.UserFavorites("u1").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncer.SourceRemote, res.Source)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "peru-cook", res.Data[0].ID)
}

func TestClient_RatingsUpsertAndAverage(t *testing.T) {
	ctx := context.Background()
	b := startBackends(t)
	c := newClient(t, b.favorites.URL, b.ratings.URL, b.reviews.URL, t.TempDir())
	place := entities.PlaceKey{PlaceID: "peru-cook", PlaceType: entities.PlaceRestaurant}

	ratings := c.UserRatings("u1")
	rating := entities.Rating{PlaceID: place.PlaceID, PlaceType: place.PlaceType, UserName: "Ana", Rating: 3}
	require.NoError(t, ratings.Add(ctx, rating))
	rating.Rating = 5
	require.NoError(t, ratings.Add(ctx, rating))

	assert.Len(t, ratings.Items(), 1)
	stored, ok := ratings.Get(client.PlaceKeyString(place))
	require.True(t, ok)
	assert.NotEmpty(t, stored.ID)

	avg, err := c.Ratings.Average(ctx, place)
	require.NoError(t, err)
	assert.Equal(t, 1, avg.TotalRatings)
	assert.Equal(t, 5.0, avg.AverageRating)

	require.NoError(t, ratings.Remove(ctx, client.PlaceKeyString(place)))
	avg, err = c.Ratings.Average(ctx, place)
	require.NoError(t, err)
	assert.Equal(t, 0, avg.TotalRatings)
}

func TestClient_ReviewDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	b := startBackends(t)
	c := newClient(t, b.favorites.URL, b.ratings.URL, b.reviews.URL, t.TempDir())

	review := entities.Review{PlaceID: "peru-cook", PlaceType: entities.PlaceRestaurant, UserName: "Ana", Rating: 4, Comment: "Rico"}
	reviews := c.UserReviews("u1")
	require.NoError(t, reviews.Add(ctx, review))

	err := reviews.Add(ctx, review)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))

	other := c.UserReviews("u1")
	_, err = other.Load(ctx)
	require.NoError(t, err)
	err = c.UserReviews("u2").Add(ctx, review)
	require.NoError(t, err)

	place, err := c.PlaceReviews(ctx, review.Place())
	require.NoError(t, err)
	assert.Equal(t, syncer.SourceRemote, place.Source)
	assert.Len(t, place.Data, 2)
}

func TestClient_PlaceReadsFallBackToSamples(t *testing.T) {
	down := closedURL()
	c := newClient(t, down, down, down, t.TempDir())
	place := entities.PlaceKey{PlaceID: "hotel-guadalajara", PlaceType: entities.PlaceHotel}

	ratings, err := c.PlaceRatings(context.Background(), place)
	require.NoError(t, err)
	assert.Equal(t, syncer.SourceFallback, ratings.Source)
	require.Len(t, ratings.Data, 2)
	assert.Equal(t, "hotel-guadalajara", ratings.Data[0].PlaceID)

	reviews, err := c.PlaceReviews(context.Background(), place)
	require.NoError(t, err)
	assert.Equal(t, "María López", reviews.Data[0].UserName)

	assert.False(t, c.Status(context.Background())["reviews"])
}

func TestClient_FavoriteAddedNotifiesWithoutEventBus(t *testing.T) {
	ctx := context.Background()
	b := startBackends(t)
	store, err := filestore.NewNotificationStore(filepath.Join(t.TempDir(), "notifications.json"))
	require.NoError(t, err)
	notifications := httptest.NewServer(routes.NewRouter("notifications", nil, nil).Notifications(
		handlers.NewNotificationHandler(services.NewNotificationService(store, 20), 3005)))
	defer notifications.Close()

	c := client.New(config.ClientConfig{
		FavoritesURL:     b.favorites.URL + "/api",
		RatingsURL:       b.ratings.URL + "/api",
		ReviewsURL:       b.reviews.URL + "/api",
		AuthURL:          closedURL() + "/api",
		NotificationsURL: notifications.URL,
		StateDir:         t.TempDir(),
		HealthCooldown:   time.Minute,
		HealthTimeout:    time.Second,
		RequestTimeout:   time.Second,
		NotifyFavorites:  true,
	})

	require.NoError(t, c.UserFavorites("u1").Add(ctx, peruCook()))

	page, err := c.Notifications.List(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, entities.NotificationFavorite, page.Notifications[0].Type)
	assert.Equal(t, "Peru Cook", page.Notifications[0].Data["placeName"])
}

func TestClient_OfflineRatingWithoutScoreIsRejected(t *testing.T) {
	down := closedURL()
	c := newClient(t, down, down, down, t.TempDir())
	ratings := c.UserRatings("u1")

	err := ratings.Add(context.Background(), entities.Rating{
		PlaceID:   "hotel-guadalajara",
		PlaceType: entities.PlaceHotel,
		UserName:  "Ana",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	assert.Empty(t, ratings.Pending())
}
