package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/cache"
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

	rt, err := bootstrap.Init(ctx, "ratings-service")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer rt.Close()

	var base repositories.RatingRepository = memory.NewRatingStore()
	if rt.UsePostgres() {
		pg, err := rt.Postgres(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL")
		}
		base = database.NewRatingAdapter(pg)
	}

	// Place listings are read far more often than written
	repo := cache.NewCachedRatingRepository(base, rt.Cache(ctx, "ratings:"), rt.Metrics)

	if rt.Config.Store.SeedSampleData {
		if err := services.SeedRatings(ctx, repo, time.Now()); err != nil {
			log.Warn().Err(err).Msg("Failed to load sample ratings")
		}
	}

	handler := routes.NewRouter("ratings-service", rt.Config.Server.AllowedOrigins, rt.Metrics).
		Ratings(handlers.NewRatingHandler(services.NewRatingService(repo)))

	if err := rt.Serve(ctx, rt.Config.Services.RatingsPort, handler); err != nil {
		log.Error().Err(err).Msg("Server failed")
	}
}
