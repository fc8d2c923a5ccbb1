package routes

import (
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/middleware"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/observability"
)

// Router holds one service's mux and the middleware shared by all services
type Router struct {
	mux            *http.ServeMux
	service        string
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router for the named service
func NewRouter(service string, allowedOrigins []string, metrics *observability.Metrics) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		service:        service,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// Favorites registers the favorites endpoints
func (r *Router) Favorites(h *handlers.FavoriteHandler) http.Handler {
	r.mux.HandleFunc("GET /api/health", handlers.Health("favorites-service"))
	r.mux.HandleFunc("GET /api/favorites", h.ListFavorites)
	r.mux.HandleFunc("GET /api/favorites/{id}", h.IsFavorite)
	r.mux.HandleFunc("POST /api/favorites", h.AddFavorite)
	r.mux.HandleFunc("DELETE /api/favorites/{id}", h.RemoveFavorite)
	return r.wrap()
}

// Reviews registers the reviews endpoints
func (r *Router) Reviews(h *handlers.ReviewHandler) http.Handler {
	r.mux.HandleFunc("GET /api/health", handlers.Health("reviews-service"))
	r.mux.HandleFunc("GET /api/reviews", h.ListReviews)
	r.mux.HandleFunc("GET /api/reviews/user", h.GetUserReview)
	r.mux.HandleFunc("GET /api/reviews/user/{userId}", h.ListUserReviews)
	r.mux.HandleFunc("POST /api/reviews", h.CreateReview)
	r.mux.HandleFunc("PUT /api/reviews/{id}", h.UpdateReview)
	r.mux.HandleFunc("DELETE /api/reviews/{id}", h.DeleteReview)
	return r.wrap()
}

// Ratings registers the ratings endpoints
func (r *Router) Ratings(h *handlers.RatingHandler) http.Handler {
	r.mux.HandleFunc("GET /api/health", handlers.Health("ratings-service"))
	r.mux.HandleFunc("GET /api/ratings/stats", h.GetStats)
	r.mux.HandleFunc("GET /api/ratings/{placeId}/{placeType}", h.ListRatings)
	r.mux.HandleFunc("GET /api/ratings/{placeId}/{placeType}/average", h.GetAverage)
	r.mux.HandleFunc("GET /api/ratings/user/{userId}", h.ListUserRatings)
	r.mux.HandleFunc("GET /api/ratings/user/{userId}/{placeId}/{placeType}", h.GetUserRating)
	r.mux.HandleFunc("POST /api/ratings", h.SubmitRating)
	r.mux.HandleFunc("DELETE /api/ratings/{id}", h.DeleteRating)
	return r.wrap()
}

// Auth registers the auth endpoints. Session endpoints require a bearer token.
func (r *Router) Auth(h *handlers.AuthHandler, verifier middleware.TokenVerifier) http.Handler {
	protected := middleware.RequireAuth(verifier)

	r.mux.HandleFunc("GET /api/health", handlers.Health("auth-service"))
	r.mux.HandleFunc("POST /api/auth/register", h.Register)
	r.mux.HandleFunc("POST /api/auth/login", h.Login)
	r.mux.Handle("POST /api/auth/verify", protected(http.HandlerFunc(h.Verify)))
	r.mux.Handle("POST /api/auth/logout", protected(http.HandlerFunc(h.Logout)))
	r.mux.Handle("GET /api/auth/profile", protected(http.HandlerFunc(h.GetProfile)))
	r.mux.Handle("PUT /api/auth/profile", protected(http.HandlerFunc(h.UpdateProfile)))
	r.mux.Handle("PUT /api/auth/change-password", protected(http.HandlerFunc(h.ChangePassword)))
	r.mux.Handle("GET /api/auth/stats", protected(http.HandlerFunc(h.GetStats)))
	return r.wrap()
}

// Notifications registers the notifications endpoints
func (r *Router) Notifications(h *handlers.NotificationHandler) http.Handler {
	r.mux.HandleFunc("GET /health", h.Health)
	r.mux.HandleFunc("POST /register-user", h.RegisterUser)
	r.mux.HandleFunc("GET /notifications/{userId}", h.ListNotifications)
	r.mux.HandleFunc("POST /notifications", h.CreateNotification)
	r.mux.HandleFunc("POST /notifications/favorite-added", h.FavoriteAdded)
	r.mux.HandleFunc("PATCH /notifications/{id}/read", h.MarkRead)
	r.mux.HandleFunc("PATCH /notifications/user/{userId}/read-all", h.MarkAllRead)
	r.mux.HandleFunc("DELETE /notifications/{id}", h.DeleteNotification)
	return r.wrap()
}

// wrap applies middleware; CORS is outermost so preflight requests skip
// the rest.
func (r *Router) wrap() http.Handler {
	var handler http.Handler = r.mux
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.service, r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)
	return handler
}
