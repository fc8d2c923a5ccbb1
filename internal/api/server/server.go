package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ShutdownTimeout bounds the drain of in-flight requests
const ShutdownTimeout = 10 * time.Second

// New returns an http.Server with the timeouts every service uses
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run serves on addr until ctx is done, then drains in-flight requests.
func Run(ctx context.Context, name, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, name, ln, handler)
}

// Serve is Run on an existing listener
func Serve(ctx context.Context, name string, ln net.Listener, handler http.Handler) error {
	srv := New(ln.Addr().String(), handler)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("service", name).Str("addr", ln.Addr().String()).Msg("Server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Str("service", name).Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Str("service", name).Msg("Server stopped")
	return nil
}
