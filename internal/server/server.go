package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/voiceofchrist/churchsite/internal/bootstrap"
)

// ShutdownTimeout bounds how long in-flight requests may take after a signal
const ShutdownTimeout = 10 * time.Second

// Server owns the HTTP listener and the dependencies behind it.
type Server struct {
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads the config at configPath and builds the full dependency graph.
func NewServer(ctx context.Context, configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}
	lgr.Info().Str("backend", cfg.Storage.Backend).Msg("Storage backend ready")

	return &Server{
		deps:   deps,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      bootstrap.SetupRouter(cfg, deps, lgr),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // media uploads
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down
// gracefully and releases the storage backend.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer s.deps.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			return fmt.Errorf("server shutdown completed with errors: %w", err)
		}
		s.logger.Info().Msg("HTTP server gracefully stopped.")
		return nil
	})

	return g.Wait()
}
