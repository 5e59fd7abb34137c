package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// OpenFunc opens target with the named backend.
type OpenFunc func(ctx context.Context, backend, target string) (*platform.Provider, error)

// Config holds MCP server configuration.
type Config struct {
	Name      string
	Version   string
	Transport string
	Port      int
	CacheTTL  time.Duration
	Backend   string         // used when a tool call names none
	Open      OpenFunc       // required
	Options   []audit.Option // applied to every Inspector

	// ContrastMode is the contrast tool's default mode.
	ContrastMode audit.ContrastMode

	// Forms holds the forms tool's defaults.
	Forms audit.FormOptions

	Logger *zap.Logger
}

// Server exposes the audit checks as MCP tools. Tool calls are serialized:
// one page is driven at a time.
type Server struct {
	cfg    Config
	cache  *SnapshotCache
	pageMu sync.Mutex
	logger *zap.Logger
	mcp    *mcpserver.MCPServer
}

// New creates and configures an MCP server with all audit tools.
func New(cfg Config) (*Server, error) {
	if cfg.Open == nil {
		return nil, fmt.Errorf("server: no page opener configured")
	}
	if cfg.Name == "" {
		cfg.Name = "a11y-audit"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		cache:  NewSnapshotCache(cfg.CacheTTL),
		logger: logger.Named("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer(cfg.Name, cfg.Version)
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.logger.Info("listening", zap.Int("port", s.cfg.Port))
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func targetParams(extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithString("target", mcp.Required(), mcp.Description("Page URL or local HTML file path")),
		mcp.WithString("backend", mcp.Description("Backend: chromium or static (default from server config)")),
	}
	return append(opts, extra...)
}

func (s *Server) registerTools() {
	// audit
	s.mcp.AddTool(
		mcp.NewTool("audit", append([]mcp.ToolOption{
			mcp.WithDescription("Run a full accessibility audit: axe-core rules, image alt text, form labels, colour contrast and keyboard navigation, merged into one report"),
		}, targetParams(
			mcp.WithBoolean("isolate", mcp.Description("Record failing checks in the report instead of aborting")),
			mcp.WithBoolean("rules", mcp.Description("Run the axe-core rule pass (default true; unavailable on the static backend)")),
			mcp.WithString("checks", mcp.Description("Comma-separated checks: images, forms, contrast, keyboard, dom, all")),
		)...)...),
		s.handleAudit,
	)

	// images
	s.mcp.AddTool(
		mcp.NewTool("images", append([]mcp.ToolOption{
			mcp.WithDescription("Classify every <img> as missing alt, empty alt, or decorative"),
		}, targetParams()...)...),
		s.handleImages,
	)

	// forms
	s.mcp.AddTool(
		mcp.NewTool("forms", append([]mcp.ToolOption{
			mcp.WithDescription("Find unlabeled form controls, radio/checkbox groups without a fieldset, and broken aria-labelledby references"),
		}, targetParams(
			mcp.WithBoolean("skip_unlabelable_types", mcp.Description("Do not require labels on hidden, submit, button, reset and image inputs")),
		)...)...),
		s.handleForms,
	)

	// contrast
	s.mcp.AddTool(
		mcp.NewTool("contrast", append([]mcp.ToolOption{
			mcp.WithDescription("Flag foreground/background colour pairs with insufficient contrast"),
		}, targetParams(
			mcp.WithString("mode", mcp.Description("identical (default) or ratio (WCAG 4.5:1)")),
		)...)...),
		s.handleContrast,
	)

	// keyboard
	s.mcp.AddTool(
		mcp.NewTool("keyboard", append([]mcp.ToolOption{
			mcp.WithDescription("Walk the page with Tab, recording the focus order and detecting focus traps"),
		}, targetParams(
			mcp.WithNumber("max_steps", mcp.Description("Tab press ceiling (default 50)")),
		)...)...),
		s.handleKeyboard,
	)

	// rules
	s.mcp.AddTool(
		mcp.NewTool("rules", append([]mcp.ToolOption{
			mcp.WithDescription("Run axe-core and return the violation list"),
		}, targetParams(
			mcp.WithString("selector", mcp.Description("Limit the run to elements matching this CSS selector")),
			mcp.WithString("tags", mcp.Description("Comma-separated rule tags (default wcag2a,wcag2aa,wcag21aa)")),
		)...)...),
		s.handleRules,
	)
}
