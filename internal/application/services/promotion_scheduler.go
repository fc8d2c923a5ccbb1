package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PromotionScheduler periodically sends promotions to subscribed users
type PromotionScheduler struct {
	notifications *NotificationService
	initialDelay  time.Duration
	interval      time.Duration
}

// NewPromotionScheduler creates a scheduler that first fires after
// initialDelay and then every interval
func NewPromotionScheduler(notifications *NotificationService, initialDelay, interval time.Duration) *PromotionScheduler {
	return &PromotionScheduler{
		notifications: notifications,
		initialDelay:  initialDelay,
		interval:      interval,
	}
}

// Run blocks until ctx is done
func (s *PromotionScheduler) Run(ctx context.Context) {
	log.Info().Dur("initial_delay", s.initialDelay).Dur("interval", s.interval).Msg("Started promotion scheduler")

	timer := time.NewTimer(s.initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		log.Info().Msg("Stopping promotion scheduler")
		return
	case <-timer.C:
		s.send(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping promotion scheduler")
			return
		case <-ticker.C:
			s.send(ctx)
		}
	}
}

func (s *PromotionScheduler) send(ctx context.Context) {
	sent, err := s.notifications.SendPromotions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send promotions")
		return
	}
	if sent == 0 {
		log.Debug().Msg("No users registered for promotions")
		return
	}
	log.Info().Int("users", sent).Msg("Promotions sent")
}
