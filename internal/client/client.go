// Package client is the WhereToGo client library. It owns one health probe
// per service and builds the per-user collections on top of them.
package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/client/api"
	"github.com/johanfuertv/WhereToGo-App/internal/client/health"
	"github.com/johanfuertv/WhereToGo-App/internal/client/localstore"
	"github.com/johanfuertv/WhereToGo-App/internal/client/session"
	"github.com/johanfuertv/WhereToGo-App/internal/client/syncer"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/pkg/config"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// Client bundles the service clients, probes and local storage
type Client struct {
	Favorites     *api.FavoritesClient
	Ratings       *api.RatingsClient
	Reviews       *api.ReviewsClient
	Auth          *api.AuthClient
	Notifications *api.NotificationsClient
	Session       *session.Manager

	store           *localstore.Store
	probes          map[string]*health.Probe
	syncerOpts      []syncer.Option
	notifyFavorites bool
}

// Option configures a Client
type Option func(*Client)

// WithSyncerOptions is passed to every collection the client builds
func WithSyncerOptions(opts ...syncer.Option) Option {
	return func(c *Client) { c.syncerOpts = append(c.syncerOpts, opts...) }
}

// New builds a client from configuration
func New(cfg config.ClientConfig, opts ...Option) *Client {
	httpClient := &http.Client{}
	apiOpts := []api.Option{api.WithHTTPClient(httpClient), api.WithTimeout(cfg.RequestTimeout)}

	c := &Client{
		Favorites:       api.NewFavoritesClient(cfg.FavoritesURL, apiOpts...),
		Ratings:         api.NewRatingsClient(cfg.RatingsURL, apiOpts...),
		Reviews:         api.NewReviewsClient(cfg.ReviewsURL, apiOpts...),
		Auth:            api.NewAuthClient(cfg.AuthURL, apiOpts...),
		Notifications:   api.NewNotificationsClient(cfg.NotificationsURL, apiOpts...),
		store:           localstore.New(cfg.StateDir),
		probes:          make(map[string]*health.Probe),
		notifyFavorites: cfg.NotifyFavorites,
	}
	for _, opt := range opts {
		opt(c)
	}

	probeOpts := []health.Option{
		health.WithHTTPClient(httpClient),
		health.WithCooldown(cfg.HealthCooldown),
		health.WithTimeout(cfg.HealthTimeout),
	}
	for _, svc := range []*api.Client{
		c.Favorites.Client, c.Ratings.Client, c.Reviews.Client, c.Auth.Client, c.Notifications.Client,
	} {
		c.probes[svc.Name()] = health.NewProbe(svc.Name(), svc.HealthURL(), probeOpts...)
	}

	c.Session = session.NewManager(c.Auth, c.probes["auth"], c.store)
	return c
}

// Probe returns the health probe of a service by name
func (c *Client) Probe(service string) *health.Probe {
	return c.probes[service]
}

// Store returns the local storage
func (c *Client) Store() *localstore.Store {
	return c.store
}

// Status checks every service
func (c *Client) Status(ctx context.Context) map[string]bool {
	out := make(map[string]bool, len(c.probes))
	for name, p := range c.probes {
		out[name] = p.Check(ctx)
	}
	return out
}

// FavoriteKey identifies a favorite by place id
func FavoriteKey(f entities.FavoritePlace) string {
	return f.ID
}

// RatingKey identifies a user's rating by place
func RatingKey(r entities.Rating) string {
	return placeKey(r.Place())
}

// ReviewKey identifies a user's review by place
func ReviewKey(r entities.Review) string {
	return placeKey(r.Place())
}

// PlaceKeyString formats a place key the way collections index it
func PlaceKeyString(place entities.PlaceKey) string {
	return placeKey(place)
}

func placeKey(p entities.PlaceKey) string {
	return p.PlaceID + ":" + string(p.PlaceType)
}

// UserFavorites returns the favorites collection of a user
func (c *Client) UserFavorites(userID string) *syncer.Syncer[entities.FavoritePlace] {
	return syncer.New(syncer.Config[entities.FavoritePlace]{
		Entity: "favorites",
		UserID: userID,
		Key:    FavoriteKey,
		Policy: syncer.RejectDuplicate,
		Remote: syncer.Remote[entities.FavoritePlace]{
			Fetch: func(ctx context.Context) ([]entities.FavoritePlace, error) {
				return c.Favorites.List(ctx, userID)
			},
			Create: func(ctx context.Context, f entities.FavoritePlace) (entities.FavoritePlace, error) {
				f.UserID = userID
				created, err := c.Favorites.Add(ctx, f)
				if err == nil && c.notifyFavorites {
					c.favoriteAdded(ctx, userID, created)
				}
				return created, err
			},
			Delete: func(ctx context.Context, f entities.FavoritePlace) error {
				return c.Favorites.Remove(ctx, userID, f.ID)
			},
		},
		Samples: func() []entities.FavoritePlace { return SampleFavorites(userID) },
		Validate: func(f entities.FavoritePlace) error {
			f.UserID = userID
			return f.Validate()
		},
	}, c.probes["favorites"], c.store, c.syncerOpts...)
}

// favoriteAdded notifies the user about a saved place. The favorite is
// already stored, so a failure is only logged.
func (c *Client) favoriteAdded(ctx context.Context, userID string, f entities.FavoritePlace) {
	if err := c.Notifications.FavoriteAdded(ctx, userID, f.Name, f.Type); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("place_id", f.ID).Msg("Failed to send favorite notification")
	}
}

// UserRatings returns the ratings a user gave. Rating a place twice
// replaces the earlier score.
func (c *Client) UserRatings(userID string) *syncer.Syncer[entities.Rating] {
	return syncer.New(syncer.Config[entities.Rating]{
		Entity: "ratings",
		UserID: userID,
		Key:    RatingKey,
		Policy: syncer.Upsert,
		Remote: syncer.Remote[entities.Rating]{
			Fetch: func(ctx context.Context) ([]entities.Rating, error) {
				return c.Ratings.ListByUser(ctx, userID)
			},
			Create: func(ctx context.Context, r entities.Rating) (entities.Rating, error) {
				r.UserID = userID
				return c.Ratings.Submit(ctx, r)
			},
			Delete: func(ctx context.Context, r entities.Rating) error {
				id := r.ID
				if id == "" {
					remote, err := c.Ratings.ListByUser(ctx, userID)
					if err != nil {
						return err
					}
					for _, candidate := range remote {
						if RatingKey(candidate) == RatingKey(r) {
							id = candidate.ID
						}
					}
					if id == "" {
						return apperrors.NewNotFoundError("rating not found")
					}
				}
				return c.Ratings.Delete(ctx, id, userID)
			},
		},
		Validate: func(r entities.Rating) error {
			r.UserID = userID
			return r.Validate()
		},
	}, c.probes["ratings"], c.store, c.syncerOpts...)
}

// UserReviews returns the reviews a user wrote. A second review of the same
// place is rejected.
func (c *Client) UserReviews(userID string) *syncer.Syncer[entities.Review] {
	return syncer.New(syncer.Config[entities.Review]{
		Entity: "reviews",
		UserID: userID,
		Key:    ReviewKey,
		Policy: syncer.RejectDuplicate,
		Remote: syncer.Remote[entities.Review]{
			Fetch: func(ctx context.Context) ([]entities.Review, error) {
				return c.Reviews.ListByUser(ctx, userID)
			},
			Create: func(ctx context.Context, r entities.Review) (entities.Review, error) {
				r.UserID = userID
				return c.Reviews.Create(ctx, r)
			},
			Delete: func(ctx context.Context, r entities.Review) error {
				id := r.ID
				if id == "" {
					remote, err := c.Reviews.ListByUser(ctx, userID)
					if err != nil {
						return err
					}
					for _, candidate := range remote {
						if ReviewKey(candidate) == ReviewKey(r) {
							id = candidate.ID
						}
					}
					if id == "" {
						return apperrors.NewNotFoundError("review not found")
					}
				}
				return c.Reviews.Delete(ctx, id, userID)
			},
		},
		Validate: func(r entities.Review) error {
			r.UserID = userID
			return r.Validate()
		},
	}, c.probes["reviews"], c.store, c.syncerOpts...)
}

// PlaceRatings returns the ratings of a place, or sample ratings when the
// ratings service is down.
func (c *Client) PlaceRatings(ctx context.Context, place entities.PlaceKey) (syncer.Result[entities.Rating], error) {
	return readPlace(ctx, c.probes["ratings"], func(ctx context.Context) ([]entities.Rating, error) {
		return c.Ratings.ListByPlace(ctx, place)
	}, func() []entities.Rating { return SampleRatings(place) })
}

// PlaceReviews returns the reviews of a place, or sample reviews when the
// reviews service is down.
func (c *Client) PlaceReviews(ctx context.Context, place entities.PlaceKey) (syncer.Result[entities.Review], error) {
	return readPlace(ctx, c.probes["reviews"], func(ctx context.Context) ([]entities.Review, error) {
		return c.Reviews.ListByPlace(ctx, place)
	}, func() []entities.Review { return SampleReviews(place) })
}

func readPlace[T any](ctx context.Context, probe *health.Probe, fetch func(context.Context) ([]T, error), samples func() []T) (syncer.Result[T], error) {
	if probe.Check(ctx) {
		data, err := fetch(ctx)
		if err == nil {
			return syncer.Result[T]{Source: syncer.SourceRemote, Data: data}, nil
		}
		if !api.IsUnreachable(err) {
			return syncer.Result[T]{}, err
		}
		probe.MarkUnavailable()
	}
	return syncer.Result[T]{Source: syncer.SourceFallback, Data: samples()}, nil
}
