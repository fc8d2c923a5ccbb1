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

	rt, err := bootstrap.Init(ctx, "reviews-service")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer rt.Close()

	var repo repositories.ReviewRepository = memory.NewReviewStore()
	if rt.UsePostgres() {
		pg, err := rt.Postgres(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL")
		}
		repo = database.NewReviewAdapter(pg)
	}

	handler := routes.NewRouter("reviews-service", rt.Config.Server.AllowedOrigins, rt.Metrics).
		Reviews(handlers.NewReviewHandler(services.NewReviewService(repo)))

	if err := rt.Serve(ctx, rt.Config.Services.ReviewsPort, handler); err != nil {
		log.Error().Err(err).Msg("Server failed")
	}
}
