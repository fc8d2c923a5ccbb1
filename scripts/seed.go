package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/database"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/postgres"
	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/observability"
	"github.com/johanfuertv/WhereToGo-App/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("seed", cfg.Environment)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE favorites, ratings, reviews`); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	if err := services.SeedRatings(ctx, database.NewRatingAdapter(pgClient), time.Now()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed ratings")
	}
	log.Info().Msg("Seeding complete")
}
