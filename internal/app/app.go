// Package app wires configuration, logging, the upstream client, and the
// tool registry into a runnable gateway, and owns transport lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/builtwith/builtwith-mcp/internal/builtwith"
	"github.com/builtwith/builtwith-mcp/internal/common"
	"github.com/builtwith/builtwith-mcp/internal/config"
	"github.com/builtwith/builtwith-mcp/internal/mcp"
	"github.com/builtwith/builtwith-mcp/internal/server"
)

// App holds all application components and dependencies.
type App struct {
	Config   *config.Config
	Logger   *common.Logger
	Client   *builtwith.Client
	Registry *mcp.Registry
	MCP      *mcpserver.MCPServer
}

// New initializes the application with all dependencies. The returned
// App serves either transport; nothing here is transport-specific.
func New(cfg *config.Config, logger *common.Logger) *App {
	a := &App{
		Config: cfg,
		Logger: logger,
		Client: builtwith.NewClient(cfg.BuiltWith.Host, cfg.BuiltWith.APIKey, logger),
	}

	a.Registry = mcp.NewRegistry(a.Client, logger)
	mcp.RegisterTools(a.Registry)
	mcp.RegisterPrompts(a.Registry)

	a.MCP = mcp.NewServer(cfg.Server.Name, config.GetVersion(), a.Registry)

	logger.Info().
		Int("tools", len(a.Registry.Tools())).
		Int("prompts", len(a.Registry.Prompts())).
		Msg("application initialization complete")

	return a
}

// Run starts the configured transport and blocks until it exits.
func (a *App) Run() error {
	switch a.Config.Server.Transport {
	case "stdio", "":
		return a.runStdio()
	case "http":
		return a.runHTTP()
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", a.Config.Server.Transport)
	}
}

// runStdio serves one persistent session over stdin/stdout. The
// configured fallback API key is the only credential; the session ends
// when the client closes stdin.
func (a *App) runStdio() error {
	a.Logger.Info().Msg("serving MCP over stdio")
	if err := mcpserver.ServeStdio(a.MCP); err != nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// runHTTP serves concurrent per-request sessions over HTTP, blocking
// until an interrupt or SIGTERM triggers graceful shutdown.
func (a *App) runHTTP() error {
	handler := mcp.NewHandler(a.MCP, a.Config.Server.AllowedOrigins, a.Logger)
	srv := server.New(a.Config, a.Logger, a.Registry, handler)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-sigChan:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
