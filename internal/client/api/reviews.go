package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// ReviewsClient talks to the reviews service
type ReviewsClient struct {
	*Client
}

// NewReviewsClient creates a client for the service at baseURL
func NewReviewsClient(baseURL string, opts ...Option) *ReviewsClient {
	return &ReviewsClient{newClient("reviews", baseURL, opts...)}
}

// ListByUser returns the reviews the user wrote
func (c *ReviewsClient) ListByUser(ctx context.Context, userID string) ([]entities.Review, error) {
	var out []entities.Review
	err := c.do(ctx, request{method: http.MethodGet, path: "/reviews/user/" + url.PathEscape(userID)}, &out)
	return out, err
}

// ListByPlace returns the reviews of a place
func (c *ReviewsClient) ListByPlace(ctx context.Context, place entities.PlaceKey) ([]entities.Review, error) {
	var out []entities.Review
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/reviews",
		query:  url.Values{"placeId": {place.PlaceID}, "placeType": {string(place.PlaceType)}},
	}, &out)
	return out, err
}

// Create stores a new review
func (c *ReviewsClient) Create(ctx context.Context, review entities.Review) (entities.Review, error) {
	var out entities.Review
	err := c.do(ctx, request{method: http.MethodPost, path: "/reviews", body: review}, &out)
	return out, err
}

// Update changes the score and comment of a review
func (c *ReviewsClient) Update(ctx context.Context, id, userID string, rating int, comment string) (entities.Review, error) {
	var out entities.Review
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/reviews/" + url.PathEscape(id),
		body: map[string]interface{}{
			"userId":  userID,
			"rating":  rating,
			"comment": comment,
		},
	}, &out)
	return out, err
}

// Delete removes a review owned by userID
func (c *ReviewsClient) Delete(ctx context.Context, id, userID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/reviews/" + url.PathEscape(id),
		body:   map[string]string{"userId": userID},
	}, nil)
}
