package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// RatingsClient talks to the ratings service
type RatingsClient struct {
	*Client
}

// NewRatingsClient creates a client for the service at baseURL
func NewRatingsClient(baseURL string, opts ...Option) *RatingsClient {
	return &RatingsClient{newClient("ratings", baseURL, opts...)}
}

// ListByUser returns every rating the user gave
func (c *RatingsClient) ListByUser(ctx context.Context, userID string) ([]entities.Rating, error) {
	var out []entities.Rating
	err := c.do(ctx, request{method: http.MethodGet, path: "/ratings/user/" + url.PathEscape(userID)}, &out)
	return out, err
}

// ListByPlace returns the ratings of a place
func (c *RatingsClient) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]entities.Rating, error) {
	var out []entities.Rating
	err := c.do(ctx, request{method: http.MethodGet, path: placePath(place)}, &out)
	return out, err
}

// Average returns the aggregate of a place
func (c *RatingsClient) Average(ctx context.Context, place entities.PlaceKey) (entities.RatingAverage, error) {
	var out entities.RatingAverage
	err := c.do(ctx, request{method: http.MethodGet, path: placePath(place) + "/average"}, &out)
	return out, err
}

// Submit creates or replaces the user's rating of a place
func (c *RatingsClient) Submit(ctx context.Context, rating entities.Rating) (entities.Rating, error) {
	var out entities.Rating
	err := c.do(ctx, request{method: http.MethodPost, path: "/ratings", body: rating}, &out)
	return out, err
}

// Delete removes a rating owned by userID
func (c *RatingsClient) Delete(ctx context.Context, id, userID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/ratings/" + url.PathEscape(id),
		body:   map[string]string{"userId": userID},
	}, nil)
}

// Stats returns the aggregate of all ratings
func (c *RatingsClient) Stats(ctx context.Context) (entities.RatingStats, error) {
	var out entities.RatingStats
	err := c.do(ctx, request{method: http.MethodGet, path: "/ratings/stats"}, &out)
	return out, err
}

func placePath(place entities.PlaceKey) string {
	return "/ratings/" + url.PathEscape(place.PlaceID) + "/" + url.PathEscape(string(place.PlaceType))
}
