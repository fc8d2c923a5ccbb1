package handlers

import (
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/api/middleware"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

// AuthHandler handles account and token requests
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type authResponse struct {
	Message string               `json:"message"`
	User    entities.UserProfile `json:"user"`
	Token   string               `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, authResponse{
		Message: "user registered successfully",
		User:    result.User,
		Token:   result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, authResponse{
		Message: "login successful",
		User:    result.User,
		Token:   result.Token,
	})
}

// Verify handles POST /api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("invalid token"))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  claims,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("invalid token"))
		return
	}
	if err := h.service.Logout(r.Context(), claims); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("invalid token"))
		return
	}

	profile, err := h.service.Profile(r.Context(), claims.ID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name            string                    `json:"name"`
	BusinessDetails *entities.BusinessDetails `json:"businessDetails"`
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("invalid token"))
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), claims.ID, req.Name, req.BusinessDetails)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "profile updated successfully",
		"user":    profile,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PUT /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("invalid token"))
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// GetStats handles GET /api/auth/stats
func (h *AuthHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
