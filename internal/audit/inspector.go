// Package audit runs accessibility checks against one open page and merges
// them into a report.
package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
	"go.uber.org/zap"
)

// DefaultMaxTabSteps bounds the keyboard walk.
const DefaultMaxTabSteps = 50

// DefaultConcurrency is the number of pages RunMany audits at once.
const DefaultConcurrency = 4

// ContrastMode selects how foreground/background pairs are judged.
type ContrastMode string

const (
	// ContrastIdentical flags only pairs whose colour strings are equal.
	ContrastIdentical ContrastMode = "identical"
	// ContrastRatio flags text whose WCAG contrast ratio is below 4.5:1.
	ContrastRatio ContrastMode = "ratio"
)

// ParseContrastMode parses "identical" or "ratio". Empty means identical.
func ParseContrastMode(s string) (ContrastMode, error) {
	switch ContrastMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContrastIdentical:
		return ContrastIdentical, nil
	case ContrastRatio:
		return ContrastRatio, nil
	}
	return "", fmt.Errorf("unknown contrast mode %q (expected identical or ratio)", s)
}

// Inspector runs checks against the page held by one Provider. Checks must
// not run concurrently on the same Inspector.
type Inspector struct {
	provider     *platform.Provider
	logger       *zap.Logger
	maxTabSteps  int
	contrastMode ContrastMode
	isolate      bool
	rules        bool
	checks       []string
	ruleConfig   rules.Config
	concurrency  int
	forms        FormOptions
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(in *Inspector) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithMaxTabSteps caps the keyboard walk. Values below 1 are ignored.
func WithMaxTabSteps(n int) Option {
	return func(in *Inspector) {
		if n > 0 {
			in.maxTabSteps = n
		}
	}
}

// WithContrastMode picks the contrast heuristic.
func WithContrastMode(m ContrastMode) Option {
	return func(in *Inspector) {
		if m != "" {
			in.contrastMode = m
		}
	}
}

// WithIsolation makes RunAudit record check failures in the report instead of
// aborting.
func WithIsolation(on bool) Option {
	return func(in *Inspector) { in.isolate = on }
}

// WithRules toggles the rule engine pass in RunAudit.
func WithRules(on bool) Option {
	return func(in *Inspector) { in.rules = on }
}

// WithChecks limits RunAudit to the named local checks (already expanded).
func WithChecks(names []string) Option {
	return func(in *Inspector) {
		if len(names) > 0 {
			in.checks = append([]string(nil), names...)
		}
	}
}

// WithSkipUnlabelableTypes leaves hidden, submit, button, reset and image
// inputs out of the unlabeled-input check. Off by default.
func WithSkipUnlabelableTypes(on bool) Option {
	return func(in *Inspector) { in.forms.SkipUnlabelableTypes = on }
}

// WithRuleConfig sets the rule engine configuration.
func WithRuleConfig(cfg rules.Config) Option {
	return func(in *Inspector) { in.ruleConfig = cfg }
}

// WithConcurrency bounds RunMany. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(in *Inspector) {
		if n > 0 {
			in.concurrency = n
		}
	}
}

// New binds an Inspector to p.
func New(p *platform.Provider, opts ...Option) *Inspector {
	in := &Inspector{
		provider:     p,
		logger:       zap.NewNop(),
		maxTabSteps:  DefaultMaxTabSteps,
		contrastMode: ContrastIdentical,
		rules:        true,
		checks:       append([]string(nil), model.AllChecks...),
		ruleConfig:   rules.DefaultConfig(),
		concurrency:  DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(in)
	}
	if p != nil {
		in.logger = in.logger.With(zap.String("target", p.Target))
	}
	return in
}

// MaxTabSteps returns the keyboard walk ceiling.
func (in *Inspector) MaxTabSteps() int { return in.maxTabSteps }

// RuleEngine returns a rule engine bound to the page's script runner.
func (in *Inspector) RuleEngine() *rules.Engine {
	var scripts platform.ScriptRunner
	if in.provider != nil {
		scripts = in.provider.Scripts
	}
	return rules.New(scripts, in.ruleConfig, in.logger)
}

func (in *Inspector) snapshot(ctx context.Context) (*model.Snapshot, error) {
	if in.provider == nil || in.provider.DOM == nil {
		return nil, fmt.Errorf("read DOM: %w", platform.ErrNotAvailable)
	}
	snap, err := in.provider.DOM.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read DOM: %w", err)
	}
	return snap, nil
}

// CheckImageAltText buckets every <img> on the page by its alt text.
func (in *Inspector) CheckImageAltText(ctx context.Context) (model.ImageAltResult, error) {
	snap, err := in.snapshot(ctx)
	if err != nil {
		return model.ImageAltResult{}, err
	}
	result := ClassifyImages(snap)
	in.logger.Debug("image check complete",
		zap.Int("missing_alt", len(result.MissingAlt)),
		zap.Int("empty_alt", len(result.EmptyAlt)),
		zap.Int("decorative", len(result.DecorativeImages)))
	return result, nil
}

// CheckFormAccessibility reports unlabelled controls, radio and checkbox
// groups without a fieldset, and dangling aria-labelledby references.
func (in *Inspector) CheckFormAccessibility(ctx context.Context) (model.FormAccessibilityResult, error) {
	snap, err := in.snapshot(ctx)
	if err != nil {
		return model.FormAccessibilityResult{}, err
	}
	result := ClassifyFormsWith(snap, in.forms)
	in.logger.Debug("form check complete",
		zap.Int("unlabeled", len(result.UnlabeledInputs)),
		zap.Int("missing_fieldsets", len(result.MissingFieldsets)),
		zap.Int("invalid_aria", len(result.InvalidAriaLabels)))
	return result, nil
}

// TestColorContrast samples every element's colour pair.
func (in *Inspector) TestColorContrast(ctx context.Context) (model.ContrastResult, error) {
	snap, err := in.snapshot(ctx)
	if err != nil {
		return model.ContrastResult{}, err
	}
	result := SampleContrast(snap, in.contrastMode)
	in.logger.Debug("contrast check complete",
		zap.String("mode", string(in.contrastMode)),
		zap.Int("violations", len(result.Violations)))
	return result, nil
}
