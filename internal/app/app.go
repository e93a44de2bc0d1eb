package app

import (
	"context"
	"errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 30 * time.Second

type Service struct {
	config *config.Config
	logger *zerolog.Logger
}

// NewService creates a new instance of the service
func NewService(cfg *config.Config) *Service {
	l := log.GetLogger()
	return &Service{config: cfg, logger: &l}
}

// Run serves handler until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then drains in-flight requests.
func (s *Service) Run(ctx context.Context, handler http.Handler) error {
	server := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	s.logger.Info().Str("addr", server.Addr).Msg("Server is listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			s.logger.Error().Err(err).Msg(apperrors.ErrorFailedToRunTheServer)
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info().Msg("Server is shutting down due to context cancellation...")
	case <-quit:
		s.logger.Info().Msg("Server is shutting down...")
	}

	return s.shutdown(server)
}

// shutdown gracefully shuts down the server without interrupting any active connections.
func (s *Service) shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg(apperrors.ErrorFailedToShutdownTheServer)
		return err
	}

	s.logger.Info().Msg("Server stopped")
	return nil
}
