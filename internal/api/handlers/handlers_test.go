package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/cache"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/memory"
	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/routes"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
)

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func favoritesServer() http.Handler {
	svc := services.NewFavoriteService(memory.NewFavoriteStore(), nil)
	return routes.NewRouter("favorites", nil, nil).Favorites(handlers.NewFavoriteHandler(svc))
}

func TestFavorites_RoundTrip(t *testing.T) {
	srv := favoritesServer()
	fav := map[string]string{
		"id": "peru-cook", "userId": "u1", "name": "Peru Cook",
		"type": "restaurant", "location": "Buga", "image": "/peru.jpg",
	}

	w := doJSON(t, srv, http.MethodPost, "/api/favorites", fav)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/favorites", fav)
	assert.Equal(t, http.StatusConflict, w.Code)
	var errBody map[string]string
	decode(t, w, &errBody)
	assert.Equal(t, "this place is already in favorites", errBody["error"])

	w = doJSON(t, srv, http.MethodGet, "/api/favorites/peru-cook?userId=u1", nil)
	var check map[string]bool
	decode(t, w, &check)
	assert.True(t, check["isFavorite"])

	w = doJSON(t, srv, http.MethodGet, "/api/favorites?userId=u1", nil)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Peru Cook", list[0]["name"])

	w = doJSON(t, srv, http.MethodDelete, "/api/favorites/peru-cook", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/favorites/peru-cook?userId=u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites_MissingFields(t *testing.T) {
	w := doJSON(t, favoritesServer(), http.MethodPost, "/api/favorites", map[string]string{"id": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "missing required fields: name, type, location, userId", body["error"])
}

func TestFavorites_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	favoritesServer().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	w := doJSON(t, favoritesServer(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "favorites-service", body["service"])
}

func TestRatings_UpsertAndAverage(t *testing.T) {
	svc := services.NewRatingService(memory.NewRatingStore())
	srv := routes.NewRouter("ratings", nil, nil).Ratings(handlers.NewRatingHandler(svc))

	rating := map[string]interface{}{
		"placeId": "peru-cook", "placeType": "restaurant",
		"userId": "u1", "userName": "Ana", "rating": 3,
	}
	w := doJSON(t, srv, http.MethodPost, "/api/ratings", rating)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	decode(t, w, &created)

	rating["rating"] = 5
	w = doJSON(t, srv, http.MethodPost, "/api/ratings", rating)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	decode(t, w, &updated)
	assert.Equal(t, created["id"], updated["id"])

	w = doJSON(t, srv, http.MethodPost, "/api/ratings", map[string]interface{}{
		"placeId": "peru-cook", "placeType": "restaurant", "userId": "u2", "userName": "Luis", "rating": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/ratings/peru-cook/restaurant/average", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avg map[string]interface{}
	decode(t, w, &avg)
	assert.Equal(t, 4.5, avg["averageRating"])
	assert.Equal(t, float64(2), avg["totalRatings"])
	assert.Equal(t, map[string]interface{}{"1": float64(0), "2": float64(0), "3": float64(0), "4": float64(50), "5": float64(50)}, avg["ratingDistribution"])

	w = doJSON(t, srv, http.MethodGet, "/api/ratings/nowhere/hotel/average", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty map[string]interface{}
	decode(t, w, &empty)
	assert.Equal(t, float64(0), empty["averageRating"])
	assert.NotContains(t, empty, "ratingDistribution")

	w = doJSON(t, srv, http.MethodGet, "/api/ratings/user/u1/peru-cook/restaurant", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/ratings/"+created["id"].(string), map[string]string{"userId": "u2"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/ratings/"+created["id"].(string), map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/ratings/stats", nil)
	var stats map[string]interface{}
	decode(t, w, &stats)
	assert.Equal(t, float64(1), stats["totalRatings"])
}

func TestRatings_RejectsFractionalScore(t *testing.T) {
	svc := services.NewRatingService(memory.NewRatingStore())
	srv := routes.NewRouter("ratings", nil, nil).Ratings(handlers.NewRatingHandler(svc))

	w := doJSON(t, srv, http.MethodPost, "/api/ratings", map[string]interface{}{
		"placeId": "p", "placeType": "hotel", "userId": "u1", "userName": "Ana", "rating": 4.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviews_ConflictAndOwnership(t *testing.T) {
	svc := services.NewReviewService(memory.NewReviewStore())
	srv := routes.NewRouter("reviews", nil, nil).Reviews(handlers.NewReviewHandler(svc))

	review := map[string]interface{}{
		"placeId": "hotel-guadalajara", "placeType": "hotel",
		"userId": "u1", "userName": "Ana", "rating": 4, "comment": "Muy bueno",
	}
	w := doJSON(t, srv, http.MethodPost, "/api/reviews", review)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	decode(t, w, &created)
	id := created["id"].(string)

	review["comment"] = "second"
	w = doJSON(t, srv, http.MethodPost, "/api/reviews", review)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/reviews?placeId=hotel-guadalajara&placeType=hotel", nil)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Muy bueno", list[0]["comment"])

	w = doJSON(t, srv, http.MethodGet, "/api/reviews", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/reviews/"+id, map[string]interface{}{"userId": "u2", "rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/reviews/missing", map[string]interface{}{"userId": "u1", "rating": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/reviews/"+id, map[string]interface{}{"userId": "u1", "rating": 5})
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	decode(t, w, &updated)
	assert.Equal(t, float64(5), updated["rating"])
	assert.Equal(t, "Muy bueno", updated["comment"])

	w = doJSON(t, srv, http.MethodGet, "/api/reviews/user?placeId=hotel-guadalajara&placeType=hotel&userId=u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/api/reviews/"+id, map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/reviews/user?placeId=hotel-guadalajara&placeType=hotel&userId=u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func authServer(t *testing.T) http.Handler {
	t.Helper()
	seed, err := services.DemoUsers(time.Now())
	require.NoError(t, err)
	users, err := filestore.NewUserStore(filepath.Join(t.TempDir(), "users.json"), seed)
	require.NoError(t, err)
	svc := services.NewAuthService(users, cache.NewMemoryAdapter(0), "test-secret", time.Hour)
	return routes.NewRouter("auth", nil, nil).Auth(handlers.NewAuthHandler(svc), svc)
}

func TestAuth_LoginVerifyLogout(t *testing.T) {
	srv := authServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/auth/login", map[string]string{"email": "demo@wheretogo.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/login", map[string]string{"email": "demo@wheretogo.com", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Message string                 `json:"message"`
		User    map[string]interface{} `json:"user"`
		Token   string                 `json:"token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)
	assert.NotContains(t, login.User, "password")
	bearer := "Bearer " + login.Token

	w = doJSON(t, srv, http.MethodPost, "/api/auth/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/verify", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var verify map[string]interface{}
	decode(t, w, &verify)
	assert.Equal(t, true, verify["valid"])
	assert.Equal(t, "demo@wheretogo.com", verify["user"].(map[string]interface{})["email"])

	w = doJSON(t, srv, http.MethodGet, "/api/auth/profile", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/logout", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/auth/profile", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RegisterAndChangePassword(t *testing.T) {
	srv := authServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	decode(t, w, &reg)
	assert.Equal(t, "traveler", reg.User["role"])

	w = doJSON(t, srv, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ana", "email": "ANA@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	bearer := "Bearer " + reg.Token
	w = doJSON(t, srv, http.MethodPut, "/api/auth/change-password",
		map[string]string{"currentPassword": "nope", "newPassword": "secret2"}, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, http.MethodPut, "/api/auth/change-password",
		map[string]string{"currentPassword": "secret1", "newPassword": "secret2"}, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/auth/login", map[string]string{"email": "ana@example.com", "password": "secret2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/auth/stats", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	decode(t, w, &stats)
	assert.Equal(t, float64(3), stats["totalUsers"])
}

func notificationsServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := filestore.NewNotificationStore(filepath.Join(t.TempDir(), "notifications.json"))
	require.NoError(t, err)
	svc := services.NewNotificationService(store, 20)
	return routes.NewRouter("notifications", nil, nil).Notifications(handlers.NewNotificationHandler(svc, 3005))
}

func TestNotifications_Lifecycle(t *testing.T) {
	srv := notificationsServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	var health map[string]interface{}
	decode(t, w, &health)
	assert.Equal(t, "notifications", health["service"])
	assert.Equal(t, float64(3005), health["port"])

	w = doJSON(t, srv, http.MethodPost, "/register-user", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var failed map[string]interface{}
	decode(t, w, &failed)
	assert.Equal(t, false, failed["success"])

	w = doJSON(t, srv, http.MethodPost, "/notifications/favorite-added", map[string]string{
		"userId": "u1", "placeName": "Peru Cook", "placeType": "restaurant",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Success      bool                   `json:"success"`
		Notification map[string]interface{} `json:"notification"`
	}
	decode(t, w, &created)
	assert.True(t, created.Success)
	id := created.Notification["id"].(string)

	w = doJSON(t, srv, http.MethodPost, "/notifications", map[string]string{
		"userId": "u1", "type": "system", "title": "Hola", "message": "Bienvenido",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/notifications/u1?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page map[string]interface{}
	decode(t, w, &page)
	assert.Equal(t, float64(2), page["total"])
	assert.Equal(t, float64(2), page["unread"])
	assert.Equal(t, true, page["hasMore"])

	w = doJSON(t, srv, http.MethodGet, "/notifications/u1?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/notifications/"+id+"/read", map[string]string{"userId": "u2"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/notifications/missing/read", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/notifications/"+id+"/read", map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/notifications/user/u1/read-all", nil)
	var readAll map[string]interface{}
	decode(t, w, &readAll)
	assert.Equal(t, float64(1), readAll["updatedCount"])

	w = doJSON(t, srv, http.MethodDelete, "/notifications/"+id, map[string]string{"userId": "u2"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, srv, http.MethodDelete, "/notifications/"+id, map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, srv, http.MethodDelete, "/notifications/"+id, map[string]string{"userId": "u1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserCollections(t *testing.T) {
	ratingSrv := routes.NewRouter("ratings", nil, nil).Ratings(handlers.NewRatingHandler(services.NewRatingService(memory.NewRatingStore())))
	reviewSrv := routes.NewRouter("reviews", nil, nil).Reviews(handlers.NewReviewHandler(services.NewReviewService(memory.NewReviewStore())))

	for _, place := range []string{"peru-cook", "chuleta-don-carlos"} {
		body := map[string]interface{}{"placeId": place, "placeType": "restaurant", "userId": "u1", "userName": "Ana", "rating": 4}
		require.Equal(t, http.StatusCreated, doJSON(t, ratingSrv, http.MethodPost, "/api/ratings", body).Code)
		require.Equal(t, http.StatusCreated, doJSON(t, reviewSrv, http.MethodPost, "/api/reviews", body).Code)
	}

	var ratings, reviews []map[string]interface{}
	decode(t, doJSON(t, ratingSrv, http.MethodGet, "/api/ratings/user/u1", nil), &ratings)
	decode(t, doJSON(t, reviewSrv, http.MethodGet, "/api/reviews/user/u1", nil), &reviews)
	assert.Len(t, ratings, 2)
	assert.Len(t, reviews, 2)

	w := doJSON(t, ratingSrv, http.MethodGet, "/api/ratings/chuleta-don-carlos/restaurant", nil)
	var byPlace []map[string]interface{}
	decode(t, w, &byPlace)
	assert.Len(t, byPlace, 1)
}
