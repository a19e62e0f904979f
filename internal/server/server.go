// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vayutech/vayu-backend/internal/config"
)

type Config struct {
	ServerConfig config.ServerConfig
	Logger       *slog.Logger
}

// Server wraps the chi router and http.Server with graceful shutdown.
type Server struct {
	router *chi.Mux
	http   *http.Server
	cfg    config.ServerConfig
	logger *slog.Logger
}

func New(cfg Config) *Server {
	router := chi.NewRouter()

	addr := fmt.Sprintf("%s:%d", cfg.ServerConfig.Host, cfg.ServerConfig.Port)

	return &Server{
		router: router,
		cfg:    cfg.ServerConfig,
		logger: cfg.Logger,
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  cfg.ServerConfig.ReadTimeout,
			WriteTimeout: cfg.ServerConfig.WriteTimeout,
			IdleTimeout:  cfg.ServerConfig.IdleTimeout,
		},
	}
}

func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)

	if err := s.http.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown waits drainDelay before closing listeners so load balancers
// can observe the instance leaving rotation, then drains in-flight
// requests up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	s.logger.Info("draining connections", "delay", drainDelay)

	select {
	case <-time.After(drainDelay):
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}
