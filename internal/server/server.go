// Package server hosts the per-request HTTP transport: the MCP
// endpoint, the discovery document, and the health check.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/builtwith/builtwith-mcp/internal/common"
	"github.com/builtwith/builtwith-mcp/internal/config"
	"github.com/builtwith/builtwith-mcp/internal/mcp"
)

// Server manages the HTTP server and routes.
type Server struct {
	cfg        *config.Config
	logger     *common.Logger
	registry   *mcp.Registry
	mcpHandler *mcp.Handler
	router     *http.ServeMux
	server     *http.Server
}

// New creates the HTTP server serving the given registry through the
// given MCP transport handler.
func New(cfg *config.Config, logger *common.Logger, registry *mcp.Registry, mcpHandler *mcp.Handler) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		mcpHandler: mcpHandler,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Int("tools", len(s.registry.Tools())).
		Int("prompts", len(s.registry.Prompts())).
		Msg("HTTP transport starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP transport")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
