package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"go.uber.org/zap"
)

// ErrViolations is wrapped by every *ViolationError.
var ErrViolations = errors.New("accessibility violations found")

// ErrNotInjected is returned when axe-core is not present on the page.
var ErrNotInjected = errors.New("axe-core is not loaded on the page")

// ViolationError is returned by Check when the page has violations. It
// carries the violations and a rendered HTML report.
type ViolationError struct {
	Violations []model.RuleViolation
	HTML       string
}

func (e *ViolationError) Error() string {
	ids := make([]string, 0, len(e.Violations))
	nodes := 0
	for _, v := range e.Violations {
		ids = append(ids, v.ID)
		nodes += len(v.Nodes)
	}
	return fmt.Sprintf("%d accessibility violation(s) on %d node(s): %s", len(e.Violations), nodes, strings.Join(ids, ", "))
}

func (e *ViolationError) Unwrap() error { return ErrViolations }

// CheckOptions scopes one run. Zero values check the whole document against
// the configured tags.
type CheckOptions struct {
	Selector string
	Tags     []string
}

// Engine drives axe-core on one page. Apart from its Config it keeps no
// state between calls.
type Engine struct {
	scripts  platform.ScriptRunner
	cfg      Config
	logger   *zap.Logger
	readFile func(string) ([]byte, error)
}

// New binds an engine to a page's script runner. Empty Config fields fall
// back to DefaultConfig.
func New(scripts platform.ScriptRunner, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scripts:  scripts,
		cfg:      cfg.withDefaults(),
		logger:   logger.Named("rules"),
		readFile: os.ReadFile,
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Init injects and configures axe-core.
func (e *Engine) Init(ctx context.Context) error {
	if err := e.Inject(ctx); err != nil {
		return err
	}
	return e.Configure(ctx)
}

// Inject loads axe-core into the page: by script tag for URLs, inline for
// local files.
func (e *Engine) Inject(ctx context.Context) error {
	if e.scripts == nil {
		return fmt.Errorf("inject axe-core: script runner %w", platform.ErrNotAvailable)
	}
	src := e.cfg.Source
	if platform.IsURL(src) && !strings.HasPrefix(strings.ToLower(src), "file://") {
		if err := e.scripts.AddScript(ctx, src, ""); err != nil {
			return fmt.Errorf("inject axe-core from %s: %w", src, err)
		}
	} else {
		path := strings.TrimPrefix(src, "file://")
		content, err := e.readFile(path)
		if err != nil {
			return fmt.Errorf("read axe-core source: %w", err)
		}
		if err := e.scripts.AddScript(ctx, "", string(content)); err != nil {
			return fmt.Errorf("inject axe-core from %s: %w", path, err)
		}
	}

	raw, err := e.scripts.Evaluate(ctx, presentJS)
	if err != nil {
		return fmt.Errorf("verify axe-core: %w", err)
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil || !ok {
		return ErrNotInjected
	}
	e.logger.Debug("axe-core injected", zap.String("source", src))
	return nil
}

// Configure applies the rule allow-list.
func (e *Engine) Configure(ctx context.Context) error {
	if e.scripts == nil {
		return fmt.Errorf("configure axe-core: script runner %w", platform.ErrNotAvailable)
	}
	if _, err := e.scripts.Evaluate(ctx, configureJS, e.cfg.Rules); err != nil {
		return fmt.Errorf("configure axe-core: %w", err)
	}
	e.logger.Debug("axe-core configured", zap.Strings("rules", e.cfg.EnabledRules()))
	return nil
}

// Violations runs axe and returns every violation. It never treats
// violations as an error.
func (e *Engine) Violations(ctx context.Context, opts CheckOptions) ([]model.RuleViolation, error) {
	if e.scripts == nil {
		return nil, fmt.Errorf("run axe-core: script runner %w", platform.ErrNotAvailable)
	}
	tags := opts.Tags
	if len(tags) == 0 {
		tags = e.cfg.Tags
	}
	raw, err := e.scripts.Evaluate(ctx, runJS, opts.Selector, tags)
	if err != nil {
		return nil, fmt.Errorf("run axe-core: %w", err)
	}
	violations := []model.RuleViolation{}
	if err := json.Unmarshal(raw, &violations); err != nil {
		return nil, fmt.Errorf("decode axe-core results: %w", err)
	}
	if violations == nil {
		violations = []model.RuleViolation{}
	}
	e.logger.Info("axe-core run complete",
		zap.String("selector", opts.Selector),
		zap.Strings("tags", tags),
		zap.Int("violations", len(violations)))
	return violations, nil
}

// Check runs axe and fails with a *ViolationError when anything is found.
func (e *Engine) Check(ctx context.Context, opts CheckOptions) error {
	violations, err := e.Violations(ctx, opts)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}
	html, err := RenderHTML(violations)
	if err != nil {
		e.logger.Warn("failed to render violation report", zap.Error(err))
	}
	return &ViolationError{Violations: violations, HTML: html}
}
