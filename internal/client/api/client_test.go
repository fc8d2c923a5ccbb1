package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/client/api"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

func TestFavoritesClient_ListSendsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/favorites", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode([]entities.FavoritePlace{{ID: "peru-cook", UserID: "u1", Name: "Peru Cook", Type: entities.PlaceRestaurant}})
	}))
	defer srv.Close()

	favs, err := api.NewFavoritesClient(srv.URL+"/api").List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Peru Cook", favs[0].Name)
}

func TestClient_MapsErrorStatus(t *testing.T) {
	tests := []struct {
		status int
		want   apperrors.ErrorType
	}{
		{http.StatusBadRequest, apperrors.ErrorTypeValidation},
		{http.StatusForbidden, apperrors.ErrorTypeForbidden},
		{http.StatusNotFound, apperrors.ErrorTypeNotFound},
		{http.StatusConflict, apperrors.ErrorTypeConflict},
		{http.StatusInternalServerError, apperrors.ErrorTypeExternal},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			defer srv.Close()

			_, err := api.NewReviewsClient(srv.URL+"/api").Create(context.Background(), entities.Review{})
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.TypeOf(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestClient_UnreachableServiceIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := api.NewRatingsClient(base + "/api").ListByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeServiceUnavailable))
	assert.True(t, api.IsUnreachable(err))
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := api.NewFavoritesClient(srv.URL+"/api", api.WithTimeout(20*time.Millisecond))
	_, err := client.List(context.Background(), "u1")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeServiceUnavailable))
}

func TestAuthClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/verify", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"valid": true,
			"user":  map[string]string{"id": "1", "email": "a@b.co", "role": "traveler"},
		})
	}))
	defer srv.Close()

	claims, err := api.NewAuthClient(srv.URL+"/api").Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "1", claims.ID)
	assert.Equal(t, entities.RoleTraveler, claims.Role)
}

func TestRatingsClient_DeleteSendsOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/ratings/r1", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body["userId"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, api.NewRatingsClient(srv.URL+"/api").Delete(context.Background(), "r1", "u1"))
}

func TestNotificationsClient_MarkAllRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/notifications/user/u1/read-all", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "updatedCount": 3})
	}))
	defer srv.Close()

	client := api.NewNotificationsClient(srv.URL)
	assert.Equal(t, srv.URL+"/health", client.HealthURL())
	n, err := client.MarkAllRead(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
