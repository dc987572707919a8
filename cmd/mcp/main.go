package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xplusplusai/fo-semantic-mcp/internal/config"
	"github.com/xplusplusai/fo-semantic-mcp/internal/mcpadapter"
	"github.com/xplusplusai/fo-semantic-mcp/internal/setup"
	"github.com/xplusplusai/fo-semantic-mcp/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	// Setup logging. Stdout carries the MCP stream.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(os.Getenv(config.EnvLogLevel))
	l := log.Logger

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg, err := config.Cached()
	if err != nil {
		l.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	// Wire dependencies
	deps, err := setup.Wire(cfg, prometheus.NewRegistry(), &l)
	if err != nil {
		l.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	// Create MCP Server
	server, err := mcpadapter.NewServer(deps.Config, deps.Searcher, deps.Logger)
	if err != nil {
		l.Error().Err(err).Msg("Unable to create MCP server")
		os.Exit(1)
	}

	l.Info().
		Str("server", cfg.ServerName).
		Str("version", cfg.ServerVersion).
		Msg("MCP server listening on stdio")

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "server is closing") {
			l.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		l.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}
