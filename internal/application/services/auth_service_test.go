package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/cache"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/entities"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
)

func newAuthService(t *testing.T) (*services.AuthService, *filestore.UserStore) {
	t.Helper()
	seed, err := services.DemoUsers(time.Now().Add(-30 * 24 * time.Hour))
	require.NoError(t, err)
	store, err := filestore.NewUserStore(filepath.Join(t.TempDir(), "users.json"), seed)
	require.NoError(t, err)
	return services.NewAuthService(store, cache.NewMemoryAdapter(0), "test-secret", time.Hour), store
}

func TestAuthService_DemoUserCanLogin(t *testing.T) {
	service, _ := newAuthService(t)

	result, err := service.Login(context.Background(), "business@wheretogo.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, entities.RoleBusiness, result.User.Role)
	require.NotNil(t, result.User.BusinessDetails)
	assert.Equal(t, "Hotel Demo", result.User.BusinessDetails.Name)
	assert.NotNil(t, result.User.LastLogin)

	claims, err := service.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "business@wheretogo.com", claims.Email)
	assert.Equal(t, result.User.ID, claims.ID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	service, store := newAuthService(t)

	_, err := service.Login(ctx, "demo@wheretogo.com", "wrong-password")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	_, err = service.Login(ctx, "nobody@wheretogo.com", "123456")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	user, err := store.GetByEmail(ctx, "demo@wheretogo.com")
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, store.Update(ctx, user))

	_, err = service.Login(ctx, "demo@wheretogo.com", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account deactivated")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	tests := []struct {
		name  string
		input services.RegisterInput
		want  apperrors.ErrorType
	}{
		{"missing fields", services.RegisterInput{Email: "a@b.co"}, apperrors.ErrorTypeValidation},
		{"bad email", services.RegisterInput{Name: "A", Email: "not-an-email", Password: "123456"}, apperrors.ErrorTypeValidation},
		{"short password", services.RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}, apperrors.ErrorTypeValidation},
		{"bad role", services.RegisterInput{Name: "A", Email: "a@b.co", Password: "123456", Role: "admin"}, apperrors.ErrorTypeValidation},
		{"duplicate email", services.RegisterInput{Name: "A", Email: "demo@wheretogo.com", Password: "123456"}, apperrors.ErrorTypeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.input)
			assert.True(t, apperrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestAuthService_RegisterBusinessKeepsPaymentMethod(t *testing.T) {
	service, _ := newAuthService(t)

	result, err := service.Register(context.Background(), services.RegisterInput{
		Name:            "Hotel Owner",
		Email:           "owner@hotel.co",
		Password:        "secret1",
		Role:            entities.RoleBusiness,
		BusinessDetails: &entities.BusinessDetails{Name: "Casa Colonial", City: "Buga"},
		PaymentMethod:   &entities.PaymentMethod{Type: "credit_card", LastFour: "1111"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Colonial", result.User.BusinessDetails.Name)
	require.Len(t, result.User.PaymentMethods, 1)
	assert.Equal(t, "1111", result.User.PaymentMethods[0].LastFour)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	result, err := service.Login(ctx, "demo@wheretogo.com", "123456")
	require.NoError(t, err)
	claims, err := service.Verify(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, claims))

	_, err = service.Verify(ctx, result.Token)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_VerifyRejectsForeignSignature(t *testing.T) {
	service, store := newAuthService(t)
	other := services.NewAuthService(store, nil, "other-secret", time.Hour)

	result, err := other.Login(context.Background(), "demo@wheretogo.com", "123456")
	require.NoError(t, err)

	_, err = service.Verify(context.Background(), result.Token)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_ProfileAndPassword(t *testing.T) {
	ctx := context.Background()
	service, store := newAuthService(t)

	business, err := store.GetByEmail(ctx, "business@wheretogo.com")
	require.NoError(t, err)

	profile, err := service.UpdateProfile(ctx, business.ID, "Negocio Nuevo", &entities.BusinessDetails{Description: "Renovado"})
	require.NoError(t, err)
	assert.Equal(t, "Negocio Nuevo", profile.Name)
	assert.Equal(t, "Hotel Demo", profile.BusinessDetails.Name)
	assert.Equal(t, "Renovado", profile.BusinessDetails.Description)
	assert.NotNil(t, profile.UpdatedAt)

	err = service.ChangePassword(ctx, business.ID, "bad-current", "newpass")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUnauthorized))

	require.NoError(t, service.ChangePassword(ctx, business.ID, "123456", "newpass"))
	_, err = service.Login(ctx, "business@wheretogo.com", "newpass")
	assert.NoError(t, err)
}

func TestAuthService_Stats(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	_, err := service.Register(ctx, services.RegisterInput{Name: "New", Email: "new@x.co", Password: "123456"})
	require.NoError(t, err)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 2, stats.TravelerUsers)
	assert.Equal(t, 1, stats.BusinessUsers)
	assert.Equal(t, 1, stats.RecentRegistrations)
}
