package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HEALTH_CHECK_COOLDOWN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Services.FavoritesPort)
	assert.Equal(t, 3002, cfg.Services.ReviewsPort)
	assert.Equal(t, 3003, cfg.Services.RatingsPort)
	assert.Equal(t, 3004, cfg.Services.AuthPort)
	assert.Equal(t, 3005, cfg.Services.NotificationsPort)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 60*time.Second, cfg.Client.HealthCooldown)
	assert.True(t, cfg.Client.NotifyFavorites)
	assert.Equal(t, 20, cfg.Notifications.DefaultPageSize)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HEALTH_CHECK_COOLDOWN", "30s")
	t.Setenv("PROMOTION_INTERVAL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATINGS_PORT", "4003")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
	assert.False(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 30*time.Second, cfg.Client.HealthCooldown)
	assert.Equal(t, 5*time.Minute, cfg.Notifications.PromotionInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:4003", cfg.Server.Addr(cfg.Services.RatingsPort))
	assert.False(t, cfg.Client.NotifyFavorites)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("AUTH_PORT", "not-a-port")
	t.Setenv("JWT_TTL", "forever")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3004, cfg.Services.AuthPort)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
}
