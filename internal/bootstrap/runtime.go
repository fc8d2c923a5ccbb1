// Package bootstrap holds the start-up sequence shared by the service
// binaries: configuration, logging, telemetry and the optional Postgres and
// Redis connections.
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/cache"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/database"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/events"
	"github.com/johanfuertv/WhereToGo-App/internal/api/server"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/postgres"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/redis"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/observability"
	"github.com/johanfuertv/WhereToGo-App/pkg/config"
	"github.com/johanfuertv/WhereToGo-App/pkg/secrets"
)

// localCacheSize bounds the in-process cache used when Redis is disabled
const localCacheSize = 1024

// Runtime is what a service binary needs once started
type Runtime struct {
	Service string
	Config  *config.Config
	Metrics *observability.Metrics

	postgres *postgres.Client
	redis    *redis.Client
	closers  []func(context.Context) error
}

// Init loads configuration, sets up logging and, when enabled,
// OpenTelemetry for one service.
func Init(ctx context.Context, service string) (*Runtime, error) {
	if _, err := secrets.ApplyVaultSecrets(ctx, secrets.LoadVaultConfigFromEnv(os.Getenv("VAULT_PATH_"+vaultSuffix(service)))); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	observability.InitLogger(service, cfg.Environment)

	rt := &Runtime{Service: service, Config: cfg}

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, service, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			rt.closers = append(rt.closers, shutdown)
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	rt.Metrics, err = observability.InitMetrics()
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// vaultSuffix turns "auth-service" into "AUTH_SERVICE"
func vaultSuffix(service string) string {
	return strings.ToUpper(strings.ReplaceAll(service, "-", "_"))
}

// UsePostgres reports whether records live in PostgreSQL
func (rt *Runtime) UsePostgres() bool {
	return rt.Config.Store.Backend == config.StoreBackendPostgres
}

// Postgres connects once and makes sure the schema exists
func (rt *Runtime) Postgres(ctx context.Context) (*postgres.Client, error) {
	if rt.postgres != nil {
		return rt.postgres, nil
	}
	client, err := postgres.NewClient(ctx, &rt.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, client); err != nil {
		client.Close()
		return nil, err
	}
	rt.postgres = client
	rt.closers = append(rt.closers, func(context.Context) error { return client.Close() })
	return client, nil
}

// Redis returns the Redis client, or nil when Redis is disabled or
// unreachable. Services keep working without it.
func (rt *Runtime) Redis(ctx context.Context) *redis.Client {
	if rt.redis != nil || !rt.Config.Redis.Enabled {
		return rt.redis
	}
	client, err := redis.NewClient(ctx, &rt.Config.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without it")
		return nil
	}
	rt.redis = client
	rt.closers = append(rt.closers, func(context.Context) error { return client.Close() })
	return client
}

// Cache returns a Redis-backed cache under prefix, or an in-process LRU
// cache when Redis is not available.
func (rt *Runtime) Cache(ctx context.Context, prefix string) providers.CacheProvider {
	if client := rt.Redis(ctx); client != nil {
		return cache.NewRedisAdapter(client, prefix)
	}
	return cache.NewMemoryAdapter(localCacheSize)
}

// EventBus returns the Redis event bus, or nil without Redis
func (rt *Runtime) EventBus(ctx context.Context) providers.EventBus {
	client := rt.Redis(ctx)
	if client == nil {
		return nil
	}
	bus := events.NewRedisEventBus(client)
	rt.closers = append(rt.closers, func(context.Context) error { return bus.Close() })
	return bus
}

// Serve runs handler on the service port until ctx is done
func (rt *Runtime) Serve(ctx context.Context, port int, handler http.Handler) error {
	return server.Run(ctx, rt.Service, rt.Config.Server.Addr(port), handler)
}

// Close releases everything Init and the connection helpers opened, newest
// first.
func (rt *Runtime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			log.Error().Err(err).Str("service", rt.Service).Msg("Error during shutdown")
		}
	}
	rt.closers = nil
}
