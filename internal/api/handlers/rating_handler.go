package handlers

import (
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// RatingHandler handles rating requests
type RatingHandler struct {
	service *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// ListRatings handles GET /api/ratings/{placeId}/{placeType}
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.ListByPlace(r.Context(), placeFromPath(r))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ratings)
}

// GetAverage handles GET /api/ratings/{placeId}/{placeType}/average
func (h *RatingHandler) GetAverage(w http.ResponseWriter, r *http.Request) {
	avg, err := h.service.Average(r.Context(), placeFromPath(r))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, avg)
}

// ListUserRatings handles GET /api/ratings/user/{userId}
func (h *RatingHandler) ListUserRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ratings)
}

// GetUserRating handles GET /api/ratings/user/{userId}/{placeId}/{placeType}
func (h *RatingHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.service.UserRating(r.Context(), r.PathValue("userId"), placeFromPath(r))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rating)
}

// SubmitRating handles POST /api/ratings. A new rating answers 201, an
// overwritten one 200.
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	var rating entities.Rating
	if err := decodeJSON(r, &rating, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	created, err := h.service.Submit(r.Context(), &rating)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, rating)
}

// DeleteRating handles DELETE /api/ratings/{id}
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), req.UserID); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /api/ratings/stats
func (h *RatingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func placeFromPath(r *http.Request) entities.PlaceKey {
	return entities.PlaceKey{
		PlaceID:   r.PathValue("placeId"),
		PlaceType: entities.PlaceType(r.PathValue("placeType")),
	}
}
