package handlers

import (
	"net/http"
	"strconv"

	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// NotificationHandler handles notification requests. Every response body
// carries a success flag.
type NotificationHandler struct {
	service *services.NotificationService
	port    int
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service *services.NotificationService, port int) *NotificationHandler {
	return &NotificationHandler{service: service, port: port}
}

func respondNotificationError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := appErrorStatus(r, err)
	respondWithJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// Health handles GET /health
func (h *NotificationHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "notifications",
		"port":    h.port,
	})
}

type registerUserRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// RegisterUser handles POST /register-user
func (h *NotificationHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondNotificationError(w, r, err)
		return
	}

	if err := h.service.RegisterUser(r.Context(), req.UserID, req.UserName); err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "user registered for notifications",
	})
}

// ListNotifications handles GET /notifications/{userId}?limit=&offset=
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), r.PathValue("userId"), limit, offset)
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": page.Notifications,
		"total":         page.Total,
		"unread":        page.Unread,
		"hasMore":       page.HasMore,
	})
}

// CreateNotification handles POST /notifications
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var n entities.Notification
	if err := decodeJSON(r, &n, false); err != nil {
		respondNotificationError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &n); err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

type favoriteAddedRequest struct {
	UserID    string             `json:"userId"`
	PlaceName string             `json:"placeName"`
	PlaceType entities.PlaceType `json:"placeType"`
}

// FavoriteAdded handles POST /notifications/favorite-added
func (h *NotificationHandler) FavoriteAdded(w http.ResponseWriter, r *http.Request) {
	var req favoriteAddedRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondNotificationError(w, r, err)
		return
	}

	n, err := h.service.FavoriteAdded(r.Context(), req.UserID, req.PlaceName, req.PlaceType)
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

// MarkRead handles PATCH /notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondNotificationError(w, r, err)
		return
	}

	n, err := h.service.MarkRead(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

// MarkAllRead handles PATCH /notifications/user/{userId}/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.MarkAllRead(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondNotificationError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"updatedCount": count,
	})
}

// DeleteNotification handles DELETE /notifications/{id}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondNotificationError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), req.UserID); err != nil {
		respondNotificationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.NewValidationError(name + " must be a non-negative integer")
	}
	return v, nil
}
