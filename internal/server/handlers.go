package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// auditResult is the audit tool's response body.
type auditResult struct {
	Report model.AccessibilityReport `yaml:"report"`
	Error  string                    `yaml:"error,omitempty"`
}

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

// page resolves the target and backend arguments shared by every tool.
func (s *Server) page(request mcp.CallToolRequest) (params map[string]interface{}, backend, target string, err error) {
	params = request.GetArguments()
	target = StringParam(params, "target", "")
	if target == "" {
		return nil, "", "", fmt.Errorf("target is required")
	}
	backend = StringParam(params, "backend", s.cfg.Backend)
	return params, backend, target, nil
}

// open opens a fresh page. The caller holds pageMu.
func (s *Server) open(ctx context.Context, backend, target string) (*platform.Provider, error) {
	s.logger.Debug("opening page", zap.String("backend", backend), zap.String("target", target))
	return s.cfg.Open(ctx, backend, target)
}

// snapshot returns the page's DOM, from the cache when fresh.
func (s *Server) snapshot(ctx context.Context, backend, target string) (*model.Snapshot, error) {
	return s.cache.Snapshot(ctx, backend, target, func(ctx context.Context) (*model.Snapshot, error) {
		p, err := s.open(ctx, backend, target)
		if err != nil {
			return nil, err
		}
		defer p.Close()
		if p.DOM == nil {
			return nil, fmt.Errorf("read DOM: %w", platform.ErrNotAvailable)
		}
		return p.DOM.Snapshot(ctx)
	})
}

// domHandler runs a pure check against the (possibly cached) snapshot.
func (s *Server) domHandler(ctx context.Context, request mcp.CallToolRequest, check func(map[string]interface{}, *model.Snapshot) (interface{}, error)) (*mcp.CallToolResult, error) {
	params, backend, target, err := s.page(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	snap, err := s.snapshot(ctx, backend, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := check(params, snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

// pageHandler opens a fresh page for checks that drive it (focus moves,
// injected scripts), then drops any cached snapshot of that page.
func (s *Server) pageHandler(ctx context.Context, request mcp.CallToolRequest, run func(context.Context, map[string]interface{}, *platform.Provider) (interface{}, error)) (*mcp.CallToolResult, error) {
	params, backend, target, err := s.page(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	p, err := s.open(ctx, backend, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer p.Close()
	defer s.cache.Invalidate(backend, target)

	result, err := run(ctx, params, p)
	if err != nil {
		if result != nil {
			return mcp.NewToolResultError(resultToText(result)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.domHandler(ctx, request, func(_ map[string]interface{}, snap *model.Snapshot) (interface{}, error) {
		return audit.ClassifyImages(snap), nil
	})
}

func (s *Server) handleForms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.domHandler(ctx, request, func(params map[string]interface{}, snap *model.Snapshot) (interface{}, error) {
		opts := s.cfg.Forms
		opts.SkipUnlabelableTypes = BoolParam(params, "skip_unlabelable_types", opts.SkipUnlabelableTypes)
		return audit.ClassifyFormsWith(snap, opts), nil
	})
}

func (s *Server) handleContrast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.domHandler(ctx, request, func(params map[string]interface{}, snap *model.Snapshot) (interface{}, error) {
		mode, err := audit.ParseContrastMode(StringParam(params, "mode", string(s.cfg.ContrastMode)))
		if err != nil {
			return nil, err
		}
		return audit.SampleContrast(snap, mode), nil
	})
}

func (s *Server) handleKeyboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pageHandler(ctx, request, func(ctx context.Context, params map[string]interface{}, p *platform.Provider) (interface{}, error) {
		opts := append(s.options(), audit.WithMaxTabSteps(IntParam(params, "max_steps", 0)))
		r, err := audit.New(p, opts...).TestKeyboardNavigation(ctx)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}

func (s *Server) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pageHandler(ctx, request, func(ctx context.Context, params map[string]interface{}, p *platform.Provider) (interface{}, error) {
		engine := audit.New(p, s.options()...).RuleEngine()
		if err := engine.Init(ctx); err != nil {
			return nil, err
		}
		violations, err := engine.Violations(ctx, rules.CheckOptions{
			Selector: StringParam(params, "selector", ""),
			Tags:     ListParam(params, "tags"),
		})
		if err != nil {
			return nil, err
		}
		return violations, nil
	})
}

func (s *Server) handleAudit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pageHandler(ctx, request, func(ctx context.Context, params map[string]interface{}, p *platform.Provider) (interface{}, error) {
		opts := s.options()
		if _, ok := params["isolate"]; ok {
			opts = append(opts, audit.WithIsolation(BoolParam(params, "isolate", false)))
		}
		opts = append(opts, audit.WithRules(BoolParam(params, "rules", p.Scripts != nil)))
		if names := ListParam(params, "checks"); len(names) > 0 {
			checks, err := model.ExpandChecks(names)
			if err != nil {
				return nil, err
			}
			opts = append(opts, audit.WithChecks(checks))
		}

		report, err := audit.New(p, opts...).RunAudit(ctx)
		if err != nil {
			var verr *rules.ViolationError
			if errors.As(err, &verr) {
				return auditResult{Report: report, Error: err.Error()}, err
			}
			return nil, err
		}
		return auditResult{Report: report}, nil
	})
}

// options returns the configured Inspector options. The server logger goes
// last so it replaces any logger in cfg.Options.
func (s *Server) options() []audit.Option {
	opts := make([]audit.Option, 0, len(s.cfg.Options)+1)
	opts = append(opts, s.cfg.Options...)
	return append(opts, audit.WithLogger(s.logger))
}
