package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goldengate-labs/sfevents/internal/cache"
	"github.com/goldengate-labs/sfevents/internal/config"
	"github.com/goldengate-labs/sfevents/internal/domain/events"
	"github.com/goldengate-labs/sfevents/internal/mcp"
	"github.com/goldengate-labs/sfevents/internal/socrata"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

var widgetDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server and begin accepting tool calls.

The server will:
- Load configuration from environment variables
- Select a transport from MCP_TRANSPORT (stdio, sse, http; default stdio)
- Expose the search_sf_events and clear_cache tools plus the events widget
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Stdio transport (Claude Desktop, local development)
  sfevents serve

  # Streamable HTTP on port 9090
  MCP_TRANSPORT=http PORT=9090 sfevents serve

  # Debug logging
  sfevents serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&widgetDir, "widget-dir", "", "directory with the prebuilt widget bundle (default: web/dist)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// All logging goes to stderr: the stdio transport owns stdout.
	config.NewLogger(cfg.Logging)

	transportCfg, err := mcp.LoadTransportConfig()
	if err != nil {
		return fmt.Errorf("transport config error: %w", err)
	}
	transportCfg.Host = cfg.Server.Host
	if transportCfg.Port == mcp.DefaultPort && cfg.Server.Port != 0 {
		transportCfg.Port = cfg.Server.Port
	}

	log.Info().
		Str("transport", string(transportCfg.Type)).
		Str("environment", cfg.Environment).
		Msg("Starting MCP server")

	source := socrata.NewClient(cfg.Socrata.BaseURL, cfg.Socrata.AppToken, socrata.WithTimeout(cfg.Socrata.Timeout))
	recordCache := cache.New(cfg.Cache.TTL, cfg.Cache.MaxItems)
	eventsService := events.NewService(source, recordCache)

	mcpServer := mcp.NewServer(mcp.Config{
		Name:      "sf-rec-events",
		Version:   Version,
		Transport: string(transportCfg.Type),
		WidgetDir: widgetDir,
	}, eventsService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := mcp.Serve(ctx, mcpServer.MCPServer(), transportCfg); err != nil {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	log.Info().Msg("Initiating graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := mcpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("MCP server shutdown error")
	}

	select {
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timeout exceeded")
		return fmt.Errorf("shutdown timeout exceeded")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("Server error during shutdown")
		}
	}

	log.Info().Msg("Shutdown complete")
	return nil
}
