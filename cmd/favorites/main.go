package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/database"
	"github.com/johanfuertv/WhereToGo-App/internal/adapters/memory"
	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/routes"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/bootstrap"
	"github.com/johanfuertv/WhereToGo-App/internal/domain/repositories"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Init(ctx, "favorites-service")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer rt.Close()

	// Records
	var repo repositories.FavoriteRepository = memory.NewFavoriteStore()
	if rt.UsePostgres() {
		pg, err := rt.Postgres(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL")
		}
		repo = database.NewFavoriteAdapter(pg)
	}

	// Favorite events for the notifications service
	bus := rt.EventBus(ctx)
	if bus == nil {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	svc := services.NewFavoriteService(repo, bus)
	handler := routes.NewRouter("favorites-service", rt.Config.Server.AllowedOrigins, rt.Metrics).
		Favorites(handlers.NewFavoriteHandler(svc))

	if err := rt.Serve(ctx, rt.Config.Services.FavoritesPort, handler); err != nil {
		log.Error().Err(err).Msg("Server failed")
	}
}
