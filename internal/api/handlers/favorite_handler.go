package handlers

import (
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// FavoriteHandler handles favorite place requests
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// ListFavorites handles GET /api/favorites?userId=
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.service.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, favorites)
}

// IsFavorite handles GET /api/favorites/{id}?userId=
func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	ok, err := h.service.IsFavorite(r.Context(), r.URL.Query().Get("userId"), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"isFavorite": ok})
}

// AddFavorite handles POST /api/favorites
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var fav entities.FavoritePlace
	if err := decodeJSON(r, &fav, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Add(r.Context(), &fav); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, fav)
}

// RemoveFavorite handles DELETE /api/favorites/{id}. The user id is read
// from the query string or the JSON body.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		var body ownerRequest
		if err := decodeJSON(r, &body, true); err != nil {
			respondWithAppError(w, r, err)
			return
		}
		userID = body.UserID
	}

	if err := h.service.Remove(r.Context(), userID, r.PathValue("id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ownerRequest struct {
	UserID string `json:"userId"`
}
