package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// FavoritesClient talks to the favorites service
type FavoritesClient struct {
	*Client
}

// NewFavoritesClient creates a client for the service at baseURL, e.g.
// http://localhost:3001/api
func NewFavoritesClient(baseURL string, opts ...Option) *FavoritesClient {
	return &FavoritesClient{newClient("favorites", baseURL, opts...)}
}

// List returns the user's favorites
func (c *FavoritesClient) List(ctx context.Context, userID string) ([]entities.FavoritePlace, error) {
	var out []entities.FavoritePlace
	err := c.do(ctx, request{method: http.MethodGet, path: "/favorites", query: url.Values{"userId": {userID}}}, &out)
	return out, err
}

// IsFavorite asks the service whether the place is a favorite of the user
func (c *FavoritesClient) IsFavorite(ctx context.Context, userID, placeID string) (bool, error) {
	var out struct {
		IsFavorite bool `json:"isFavorite"`
	}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/favorites/" + url.PathEscape(placeID),
		query:  url.Values{"userId": {userID}},
	}, &out)
	return out.IsFavorite, err
}

// Add stores a favorite
func (c *FavoritesClient) Add(ctx context.Context, fav entities.FavoritePlace) (entities.FavoritePlace, error) {
	var out entities.FavoritePlace
	err := c.do(ctx, request{method: http.MethodPost, path: "/favorites", body: fav}, &out)
	return out, err
}

// Remove deletes a favorite
func (c *FavoritesClient) Remove(ctx context.Context, userID, placeID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/favorites/" + url.PathEscape(placeID),
		query:  url.Values{"userId": {userID}},
	}, nil)
}
