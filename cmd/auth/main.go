package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/routes"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Init(ctx, "auth-service")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer rt.Close()

	cfg := rt.Config
	if cfg.Auth.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is not set; tokens are signed with the demo secret")
	}

	demo, err := services.DemoUsers(time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build demo users")
	}
	users, err := filestore.NewUserStore(filepath.Join(cfg.Store.DataDir, "users.json"), demo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user store")
	}

	// Revoked token ids
	revoked := rt.Cache(ctx, "auth:")

	svc := services.NewAuthService(users, revoked, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := routes.NewRouter("auth-service", cfg.Server.AllowedOrigins, rt.Metrics).
		Auth(handlers.NewAuthHandler(svc), svc)

	if err := rt.Serve(ctx, cfg.Services.AuthPort, handler); err != nil {
		log.Error().Err(err).Msg("Server failed")
	}
}
