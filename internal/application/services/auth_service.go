package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
	recentWindow      = 7 * 24 * time.Hour
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Claims are the token claims of a signed-in user
type Claims struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Role  entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput is the data accepted at registration
type RegisterInput struct {
	Name            string                    `json:"name"`
	Email           string                    `json:"email"`
	Password        string                    `json:"password"`
	Role            entities.Role             `json:"role"`
	BusinessDetails *entities.BusinessDetails `json:"businessDetails,omitempty"`
	PaymentMethod   *entities.PaymentMethod   `json:"paymentMethod,omitempty"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	User  entities.UserProfile `json:"user"`
	Token string               `json:"token"`
}

// AuthService handles accounts and tokens
type AuthService struct {
	users   repositories.UserRepository
	revoked providers.CacheProvider
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewAuthService creates a new auth service. revoked stores logged out token
// ids; it may be nil, in which case logout does not revoke tokens.
func NewAuthService(users repositories.UserRepository, revoked providers.CacheProvider, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:   users,
		revoked: revoked,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Register creates an account and signs the user in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := requireFields(
		field{"name", in.Name != ""},
		field{"email", in.Email != ""},
		field{"password", in.Password != ""},
	); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Role == "" {
		in.Role = entities.RoleTraveler
	}
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be traveler or business")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}
	if in.Role == entities.RoleBusiness {
		user.BusinessDetails = in.BusinessDetails
		user.PaymentMethods = []entities.PaymentMethod{}
		if in.PaymentMethod != nil {
			user.PaymentMethods = append(user.PaymentMethods, *in.PaymentMethod)
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// Login checks credentials and records the login time
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := requireFields(
		field{"email", email != ""},
		field{"password", password != ""},
	); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("account deactivated")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	now := s.now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// Verify parses a token and rejects expired or revoked ones
func (s *AuthService) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	if s.revoked != nil && claims.RegisteredClaims.ID != "" {
		revoked, err := s.revoked.Exists(ctx, revokedKey(claims.RegisteredClaims.ID))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to check token revocation")
		}
		if revoked {
			return nil, apperrors.NewUnauthorizedError("invalid token")
		}
	}
	return claims, nil
}

// Logout revokes the token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if s.revoked == nil || claims.RegisteredClaims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := claims.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	seconds := int(remaining / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if err := s.revoked.Set(ctx, revokedKey(claims.RegisteredClaims.ID), []byte(claims.ID), seconds); err != nil {
		return apperrors.NewInternalError("failed to revoke token", err)
	}
	log.Info().Str("user_id", claims.ID).Msg("User logged out")
	return nil
}

// Profile returns the public profile of a user
func (s *AuthService) Profile(ctx context.Context, userID string) (*entities.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile changes the name and, for business users, merges the
// non-empty business detail fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string, details *entities.BusinessDetails) (*entities.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if details != nil && user.Role == entities.RoleBusiness {
		user.BusinessDetails = mergeBusinessDetails(user.BusinessDetails, details)
	}
	now := s.now().UTC()
	user.UpdatedAt = &now

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := requireFields(
		field{"currentPassword", current != ""},
		field{"newPassword", next != ""},
	); err != nil {
		return err
	}
	if len(next) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("new password must be at least %d characters", minPasswordLength))
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.PasswordHash, current) {
		return apperrors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	now := s.now().UTC()
	user.UpdatedAt = &now
	return s.users.Update(ctx, user)
}

// Stats summarizes the user base
func (s *AuthService) Stats(ctx context.Context) (*entities.UserStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-recentWindow)
	stats := &entities.UserStats{TotalUsers: len(users)}
	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		switch u.Role {
		case entities.RoleTraveler:
			stats.TravelerUsers++
		case entities.RoleBusiness:
			stats.BusinessUsers++
		}
		if u.CreatedAt.After(cutoff) {
			stats.RecentRegistrations++
		}
	}
	return stats, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	now := s.now()
	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return token, nil
}

func revokedKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}

func mergeBusinessDetails(current, update *entities.BusinessDetails) *entities.BusinessDetails {
	merged := entities.BusinessDetails{}
	if current != nil {
		merged = *current
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&merged.Name, update.Name)
	set(&merged.Type, update.Type)
	set(&merged.Address, update.Address)
	set(&merged.City, update.City)
	set(&merged.Description, update.Description)
	return &merged
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plain password
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DemoUsers builds the accounts written to a fresh users file
func DemoUsers(now time.Time) ([]*entities.User, error) {
	hash, err := HashPassword("123456")
	if err != nil {
		return nil, err
	}
	return []*entities.User{
		{
			ID:           uuid.New().String(),
			Name:         "Usuario Demo",
			Email:        "demo@wheretogo.com",
			PasswordHash: hash,
			Role:         entities.RoleTraveler,
			CreatedAt:    now,
			IsActive:     true,
		},
		{
			ID:           uuid.New().String(),
			Name:         "Negocio Demo",
			Email:        "business@wheretogo.com",
			PasswordHash: hash,
			Role:         entities.RoleBusiness,
			CreatedAt:    now,
			IsActive:     true,
			BusinessDetails: &entities.BusinessDetails{
				Name:        "Hotel Demo",
				Type:        "hotel",
				Address:     "Calle Principal 123",
				City:        "Buga",
				Description: "Hotel de demostración",
			},
			PaymentMethods: []entities.PaymentMethod{{Type: "credit_card", LastFour: "4242"}},
		},
	}, nil
}
