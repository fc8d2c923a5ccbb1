package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// NotificationsClient talks to the notifications service
type NotificationsClient struct {
	*Client
}

// NewNotificationsClient creates a client for the service at baseURL, e.g.
// http://localhost:3005
func NewNotificationsClient(baseURL string, opts ...Option) *NotificationsClient {
	return &NotificationsClient{newClient("notifications", baseURL, opts...)}
}

// RegisterUser subscribes a user to promotions
func (c *NotificationsClient) RegisterUser(ctx context.Context, userID, userName string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/register-user",
		body:   map[string]string{"userId": userID, "userName": userName},
	}, nil)
}

// List returns one page of the user's notifications
func (c *NotificationsClient) List(ctx context.Context, userID string, limit, offset int) (entities.NotificationPage, error) {
	var out entities.NotificationPage
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/notifications/" + url.PathEscape(userID),
		query:  query,
	}, &out)
	return out, err
}

// FavoriteAdded asks the service to notify a user about a saved place
func (c *NotificationsClient) FavoriteAdded(ctx context.Context, userID, placeName string, placeType entities.PlaceType) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/notifications/favorite-added",
		body: map[string]interface{}{
			"userId":    userID,
			"placeName": placeName,
			"placeType": placeType,
		},
	}, nil)
}

// MarkRead marks one notification as read
func (c *NotificationsClient) MarkRead(ctx context.Context, id, userID string) error {
	return c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/notifications/" + url.PathEscape(id) + "/read",
		body:   map[string]string{"userId": userID},
	}, nil)
}

// MarkAllRead marks every notification of the user as read
func (c *NotificationsClient) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var out struct {
		UpdatedCount int `json:"updatedCount"`
	}
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/notifications/user/" + url.PathEscape(userID) + "/read-all",
	}, &out)
	return out.UpdatedCount, err
}

// Delete removes one notification
func (c *NotificationsClient) Delete(ctx context.Context, id, userID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/notifications/" + url.PathEscape(id),
		body:   map[string]string{"userId": userID},
	}, nil)
}
