package api

import (
	"context"
	"net/http"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
)

// AuthClient talks to the auth service
type AuthClient struct {
	*Client
}

// NewAuthClient creates a client for the service at baseURL
func NewAuthClient(baseURL string, opts ...Option) *AuthClient {
	return &AuthClient{newClient("auth", baseURL, opts...)}
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string               `json:"message"`
	User    entities.UserProfile `json:"user"`
	Token   string               `json:"token"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name            string                    `json:"name"`
	Email           string                    `json:"email"`
	Password        string                    `json:"password"`
	Role            entities.Role             `json:"role,omitempty"`
	BusinessDetails *entities.BusinessDetails `json:"businessDetails,omitempty"`
	PaymentMethod   *entities.PaymentMethod   `json:"paymentMethod,omitempty"`
}

// TokenClaims are the claims the service reports for a valid token
type TokenClaims struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Role  entities.Role `json:"role"`
}

// Register creates an account
func (c *AuthClient) Register(ctx context.Context, in RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: in}, &out)
	return out, err
}

// Login signs in with email and password
func (c *AuthClient) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &out)
	return out, err
}

// Verify checks a token
func (c *AuthClient) Verify(ctx context.Context, token string) (TokenClaims, error) {
	var out struct {
		Valid bool        `json:"valid"`
		User  TokenClaims `json:"user"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/verify", token: token}, &out)
	return out.User, err
}

// Logout revokes a token
func (c *AuthClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", token: token}, nil)
}

// Profile returns the signed-in user's profile
func (c *AuthClient) Profile(ctx context.Context, token string) (entities.UserProfile, error) {
	var out entities.UserProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/profile", token: token}, &out)
	return out, err
}

// UpdateProfile changes the name and business details
func (c *AuthClient) UpdateProfile(ctx context.Context, token, name string, details *entities.BusinessDetails) (entities.UserProfile, error) {
	var out struct {
		User entities.UserProfile `json:"user"`
	}
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/auth/profile",
		token:  token,
		body: map[string]interface{}{
			"name":            name,
			"businessDetails": details,
		},
	}, &out)
	return out.User, err
}

// ChangePassword replaces the password of the signed-in user
func (c *AuthClient) ChangePassword(ctx context.Context, token, current, next string) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/auth/change-password",
		token:  token,
		body:   map[string]string{"currentPassword": current, "newPassword": next},
	}, nil)
}
