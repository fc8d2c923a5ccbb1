package handlers

import (
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	service *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListReviews handles GET /api/reviews?placeId=&placeType=
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByPlace(r.Context(), placeFromQuery(r))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// GetUserReview handles GET /api/reviews/user?placeId=&placeType=&userId=
func (h *ReviewHandler) GetUserReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.UserReview(r.Context(), r.URL.Query().Get("userId"), placeFromQuery(r))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// ListUserReviews handles GET /api/reviews/user/{userId}
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reviews)
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review entities.Review
	if err := decodeJSON(r, &review, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &review); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

type updateReviewRequest struct {
	UserID  string `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	review, err := h.service.Update(r.Context(), r.PathValue("id"), req.UserID, req.Rating, req.Comment)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
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

func placeFromQuery(r *http.Request) entities.PlaceKey {
	q := r.URL.Query()
	return entities.PlaceKey{
		PlaceID:   q.Get("placeId"),
		PlaceType: entities.PlaceType(q.Get("placeType")),
	}
}
