// Package server exposes the state engine as MCP tools.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/platform"
	"github.com/mj1618/uistate/internal/state"
	"github.com/mj1618/uistate/internal/version"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with one driver and the engine bound to it.
type Server struct {
	engine   *state.Engine
	driver   platform.Driver
	driverMu sync.Mutex
	mcp      *mcpserver.MCPServer
	logger   *zap.Logger
}

// New creates an MCP server with the state tools registered.
func New(engine *state.Engine, driver platform.Driver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine: engine,
		driver: driver,
		logger: logger,
	}
	s.mcp = mcpserver.NewMCPServer("uistate", version.Version)
	s.mcp.AddTools(s.tools()...)
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	s.logger.Info("serving", zap.String("transport", cfg.Transport),
		zap.String("platform", string(s.driver.Platform())))
	switch cfg.Transport {
	case TransportStdio, "":
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		{
			Tool: mcp.NewTool("State-Tool",
				mcp.WithDescription("Get the current UI state: window size, orientation, every element with text and a numbered list of interactive elements with their bounding boxes. "+
					"With use_vision, also returns a screenshot where each interactive element is outlined and labelled with its number."),
				mcp.WithBoolean("use_vision", mcp.Description("Include an annotated screenshot (default: false)")),
			),
			Handler: s.handleState,
		},
		{
			Tool: mcp.NewTool("Element-Tool",
				mcp.WithDescription("Take a fresh snapshot and return the interactive element with the given number, including its center point."),
				mcp.WithNumber("number", mcp.Description("Number shown in the State-Tool output"), mcp.Required()),
			),
			Handler: s.handleElement,
		},
	}
}
