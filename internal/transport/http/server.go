package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salespipe/internal/config"
	"salespipe/internal/middleware"
	"salespipe/internal/services"
)

// NewRouter builds the read-only reporting API router.
func NewRouter(data *services.DataService, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}
	handler := NewDataHandler(data, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/run", handler.GetRun)
		r.Get("/tables/{name}", handler.GetTable)
		r.Get("/aggregates/{name}", handler.GetAggregate)
	})
	return r
}

// Server wraps the http.Server with the configured timeouts.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates the reporting API server.
func NewServer(cfg config.ServerConfig, data *services.DataService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      NewRouter(data, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe blocks serving the API until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.logger.Info("reporting API listening", slog.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
