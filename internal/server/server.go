// Package server exposes the probe's operations as Model Context Protocol
// tools.
package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/probe"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Version   string

	// Probe supplies defaults for tool arguments the client leaves out.
	Probe probe.Config
}

// Server wraps the MCP server with the platform provider and tree cache.
// Tool calls are serialized on providerMu: only one of them drives or
// reads the desktop at a time.
type Server struct {
	provider   *platform.Provider
	cache      *TreeCache
	defaults   probe.Config
	log        *slog.Logger
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// New creates an MCP server over p with all probe tools registered.
func New(p *platform.Provider, cfg Config, logger *slog.Logger) (*Server, error) {
	if p == nil {
		return nil, platform.ErrUnsupported
	}
	if p.Reader == nil {
		return nil, fmt.Errorf("reader not available on this platform")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		provider: p,
		cache:    NewTreeCache(p.Reader, p.IdleWaiter, cfg.CacheTTL),
		defaults: cfg.Probe,
		log:      logger,
	}
	s.mcp = mcpserver.NewMCPServer("focusprobe", version)
	s.registerTools()
	return s, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio", "":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("serving MCP over streamable HTTP", "addr", addr)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// cachedProvider returns the provider with element reads served from the
// tree cache. Only locate_search_window reads through it.
func (s *Server) cachedProvider() *platform.Provider {
	p := *s.provider
	p.Reader = s.cache
	p.IdleWaiter = s.cache
	return &p
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List on-screen windows in enumeration order"),
			mcp.WithString("app", mcp.Description("Filter by application name")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("locate_search_window",
			mcp.WithDescription("Find the open Go to Class popup by its label and return its labels and text fields. Waits once for the UI to go idle before giving up."),
			mcp.WithString("app", mcp.Description("IDE application name")),
			mcp.WithNumber("pid", mcp.Description("IDE process ID")),
			mcp.WithString("label", mcp.Description("Exact label text identifying the popup (default 'Enter class name:')")),
			mcp.WithBoolean("flat", mcp.Description("Return elements as a flat list with path breadcrumbs")),
		),
		s.handleLocate,
	)

	s.mcp.AddTool(
		mcp.NewTool("check_search_field",
			mcp.WithDescription("Assert the Go to Class popup's text field holds exactly the expected text"),
			mcp.WithString("expected", mcp.Description("Expected field text (exact, case-sensitive)"), mcp.Required()),
			mcp.WithString("app", mcp.Description("IDE application name")),
			mcp.WithNumber("pid", mcp.Description("IDE process ID")),
			mcp.WithString("label", mcp.Description("Exact label text identifying the popup")),
		),
		s.handleCheck,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_focus_probe",
			mcp.WithDescription("Run the Go to Class focus regression: open the popup, type, verify and close it for each iteration. Returns the run report."),
			mcp.WithString("app", mcp.Description("IDE application name")),
			mcp.WithNumber("pid", mcp.Description("IDE process ID")),
			mcp.WithNumber("iterations", mcp.Description("Number of open/type/verify/close cycles (default 11)")),
			mcp.WithString("text", mcp.Description("Text typed into the popup")),
			mcp.WithString("label", mcp.Description("Exact label text identifying the popup")),
			mcp.WithString("shortcut", mcp.Description("Key combo that opens Go to Class (e.g. 'cmd+o')")),
			mcp.WithNumber("delay", mcp.Description("Milliseconds between keystrokes")),
			mcp.WithNumber("settle", mcp.Description("Milliseconds to wait after typing")),
			mcp.WithNumber("background-load", mcp.Description("CPU busy workers to run during the probe")),
			mcp.WithString("artifacts", mcp.Description("Directory for failure screenshots")),
		),
		s.handleRunProbe,
	)
}
