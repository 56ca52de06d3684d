// Package mcp provides MCP (Model Context Protocol) server configuration and
// transport support for the SF events service.
package mcp

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/goldengate-labs/sfevents/internal/domain/events"
	"github.com/goldengate-labs/sfevents/internal/mcp/prompts"
	"github.com/goldengate-labs/sfevents/internal/mcp/resources"
	"github.com/goldengate-labs/sfevents/internal/mcp/tools"
)

// Server wraps the MCP server with the events domain service. It exposes the
// event search pipeline through MCP tools and serves the widget markup as a
// resource.
type Server struct {
	mcp           *mcpserver.MCPServer
	eventsService *events.Service
	widgetDir     string
}

// Config holds configuration for the MCP server.
type Config struct {
	Name      string
	Version   string
	Transport string

	// WidgetDir is the directory holding the prebuilt widget bundle
	// (component.js, component.css).
	WidgetDir string
}

// NewServer creates a new MCP server wired to the events service.
func NewServer(cfg Config, eventsService *events.Service) *Server {
	mcpServer := mcpserver.NewMCPServer(
		cfg.Name,
		cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(true, true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions("Browse upcoming San Francisco Recreation & Parks department programs from the public data.sfgov.org dataset."),
	)

	srv := &Server{
		mcp:           mcpServer,
		eventsService: eventsService,
		widgetDir:     cfg.WidgetDir,
	}

	srv.registerTools()
	srv.registerResources(cfg)
	srv.registerPrompts()

	return srv
}

// MCPServer returns the underlying MCP server for use with transports.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

func (s *Server) registerTools() {
	eventTools := tools.NewEventTools(s.eventsService)
	s.mcp.AddTool(eventTools.SearchEventsTool(), eventTools.SearchEventsHandler)
	s.mcp.AddTool(eventTools.ClearCacheTool(), eventTools.ClearCacheHandler)
}

func (s *Server) registerResources(cfg Config) {
	widget := resources.NewWidgetResources(s.widgetDir)
	s.mcp.AddResource(widget.WidgetResource(), widget.WidgetReadHandler())

	info := resources.NewInfoResource(resources.ServerInfo{
		Name:    cfg.Name,
		Version: cfg.Version,
		Capabilities: resources.ServerCapabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
		Transport: cfg.Transport,
	})
	s.mcp.AddResource(info.InfoResource(), info.InfoReadHandler())
}

func (s *Server) registerPrompts() {
	templates := prompts.NewPromptTemplates()
	s.mcp.AddPrompt(templates.PlanOutingPrompt(), templates.PlanOutingHandler)
}

// Shutdown gracefully shuts down the MCP server and cleans up resources.
func (s *Server) Shutdown(ctx context.Context) error {
	// No held resources today; hook kept for symmetry with Serve.
	return nil
}
