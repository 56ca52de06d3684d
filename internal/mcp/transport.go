package mcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// TransportType represents the available MCP transport protocols.
type TransportType string

const (
	// TransportStdio uses standard input/output for MCP communication.
	// Best for: Claude Desktop, CLI tools, local development.
	TransportStdio TransportType = "stdio"

	// TransportSSE uses Server-Sent Events for MCP communication.
	// Best for: Web applications, browser-based clients.
	TransportSSE TransportType = "sse"

	// TransportHTTP uses Streamable HTTP for MCP communication.
	// Best for: Production deployments, scalable web services.
	TransportHTTP TransportType = "http"
)

const (
	// DefaultTransport is used when MCP_TRANSPORT is not set.
	DefaultTransport = TransportStdio

	// DefaultPort is used when PORT is not set for HTTP/SSE transports.
	DefaultPort = 8080

	// GracefulShutdownTimeout is the maximum time to wait for graceful
	// shutdown. Allows in-flight requests to complete before forcing
	// shutdown.
	GracefulShutdownTimeout = 30 * time.Second
)

// TransportConfig holds configuration for MCP transport selection.
type TransportConfig struct {
	// Type specifies which transport to use (stdio, sse, http).
	Type TransportType

	// Port is the HTTP port for SSE and HTTP transports (ignored for stdio).
	Port int

	// Host is the bind address for SSE and HTTP transports (default: "0.0.0.0").
	Host string
}

// LoadTransportConfig reads transport configuration from environment variables.
// Environment variables:
//   - MCP_TRANSPORT: "stdio", "sse", or "http" (default: "stdio")
//   - PORT: HTTP port for SSE/HTTP transports (default: 8080)
//   - HOST: Bind address for SSE/HTTP transports (default: "0.0.0.0")
func LoadTransportConfig() (*TransportConfig, error) {
	cfg := &TransportConfig{
		Type: DefaultTransport,
		Port: DefaultPort,
		Host: "0.0.0.0",
	}

	if transportEnv := os.Getenv("MCP_TRANSPORT"); transportEnv != "" {
		transport := TransportType(transportEnv)
		switch transport {
		case TransportStdio, TransportSSE, TransportHTTP:
			cfg.Type = transport
		default:
			return nil, fmt.Errorf("invalid MCP_TRANSPORT value: %s (must be stdio, sse, or http)", transportEnv)
		}
	}

	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value: %s (must be a number)", portEnv)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT value: %d (must be between 1 and 65535)", port)
		}
		cfg.Port = port
	}

	if hostEnv := os.Getenv("HOST"); hostEnv != "" {
		cfg.Host = hostEnv
	}

	return cfg, nil
}

// ServeStdio starts the MCP server using stdio transport. The server reads
// requests from stdin and writes responses to stdout, which is why all
// logging in this process goes to stderr.
func ServeStdio(ctx context.Context, mcpServer *server.MCPServer) error {
	log.Info().Msg("Starting MCP server with stdio transport")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ServeStdio(mcpServer); err != nil {
			errCh <- fmt.Errorf("stdio server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Context cancelled, stdio server stopping")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ServeSSE starts the MCP server using Server-Sent Events transport.
func ServeSSE(ctx context.Context, mcpServer *server.MCPServer, cfg *TransportConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Info().
		Str("transport", "sse").
		Str("addr", addr).
		Msg("Starting MCP server with SSE transport")

	sseServer := server.NewSSEServer(mcpServer)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: sseServer,
	}

	return serveHTTPServer(ctx, httpServer, "SSE")
}

// ServeHTTP starts the MCP server using Streamable HTTP transport.
func ServeHTTP(ctx context.Context, mcpServer *server.MCPServer, cfg *TransportConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Info().
		Str("transport", "http").
		Str("addr", addr).
		Msg("Starting MCP server with Streamable HTTP transport")

	httpTransport := server.NewStreamableHTTPServer(mcpServer)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: httpTransport,
	}

	return serveHTTPServer(ctx, httpServer, "HTTP")
}

// Serve starts the MCP server with the configured transport.
func Serve(ctx context.Context, mcpServer *server.MCPServer, cfg *TransportConfig) error {
	switch cfg.Type {
	case TransportStdio:
		return ServeStdio(ctx, mcpServer)
	case TransportSSE:
		return ServeSSE(ctx, mcpServer, cfg)
	case TransportHTTP:
		return ServeHTTP(ctx, mcpServer, cfg)
	default:
		return fmt.Errorf("unsupported transport type: %s", cfg.Type)
	}
}

func serveHTTPServer(ctx context.Context, httpServer *http.Server, name string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("%s server error: %w", name, err)
		}
		close(errCh)
	}()

	log.Info().Str("addr", httpServer.Addr).Msgf("%s server listening", name)

	select {
	case <-ctx.Done():
		log.Info().Msgf("Shutting down %s server", name)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msgf("error during graceful shutdown of %s server", name)
			return fmt.Errorf("%s server shutdown error: %w", name, err)
		}
		log.Info().Msgf("%s server shutdown complete", name)
		return nil
	case err := <-errCh:
		return err
	}
}
