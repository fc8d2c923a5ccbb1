package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/johanfuertv/WhereToGo-App/internal/adapters/filestore"
	"github.com/johanfuertv/WhereToGo-App/internal/api/handlers"
	"github.com/johanfuertv/WhereToGo-App/internal/api/routes"
	"github.com/johanfuertv/WhereToGo-App/internal/application/services"
	"github.com/johanfuertv/WhereToGo-App/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Init(ctx, "notifications-service")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}
	defer rt.Close()

	cfg := rt.Config
	store, err := filestore.NewNotificationStore(filepath.Join(cfg.Store.DataDir, "notifications.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open notification store")
	}
	svc := services.NewNotificationService(store, cfg.Notifications.DefaultPageSize)

	handler := routes.NewRouter("notifications-service", cfg.Server.AllowedOrigins, rt.Metrics).
		Notifications(handlers.NewNotificationHandler(svc, cfg.Services.NotificationsPort))

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Notifications.PromotionsEnabled {
		scheduler := services.NewPromotionScheduler(svc, cfg.Notifications.PromotionInitialDelay, cfg.Notifications.PromotionInterval)
		g.Go(func() error {
			scheduler.Run(ctx)
			return nil
		})
	}

	if bus := rt.EventBus(ctx); bus != nil {
		consumer := services.NewFavoriteEventConsumer(bus, svc)
		g.Go(func() error {
			if err := consumer.Run(ctx); err != nil {
				log.Warn().Err(err).Msg("Favorite event consumer stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		return rt.Serve(ctx, cfg.Services.NotificationsPort, handler)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server failed")
	}
}
