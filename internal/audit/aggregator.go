package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
	"go.uber.org/zap"
)

// RunAudit runs one full pass over the page: it initializes the rule engine,
// runs the throwing rule check once over the whole page, then runs the local
// checks in order and merges everything into one report.
//
// By default the first failure aborts the pass and is returned. When the
// rule check finds violations the returned report still carries them in
// Rules alongside the *rules.ViolationError.
//
// With WithIsolation(true) rule violations are collected without failing and
// each local check failure is recorded in report.Errors; the remaining checks
// still run. Rule engine initialization failures always abort.
func (in *Inspector) RunAudit(ctx context.Context) (model.AccessibilityReport, error) {
	if in.provider == nil {
		return model.AccessibilityReport{}, fmt.Errorf("run audit: %w", platform.ErrNotAvailable)
	}
	report := newReport(in.provider.Target)
	start := time.Now()

	if in.rules {
		if err := in.runRules(ctx, &report); err != nil {
			return report, err
		}
	}

	for _, check := range in.checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		err := in.runCheck(ctx, check, &report)
		if err == nil {
			continue
		}
		if !in.isolate {
			return report, fmt.Errorf("%s check: %w", check, err)
		}
		in.logger.Warn("check failed", zap.String("check", check), zap.Error(err))
		if report.Errors == nil {
			report.Errors = map[string]string{}
		}
		report.Errors[check] = err.Error()
	}

	in.logger.Info("audit complete",
		zap.String("id", report.ID),
		zap.Int("findings", len(model.FlattenReport(report))),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}

func newReport(url string) model.AccessibilityReport {
	return model.AccessibilityReport{
		ID:       uuid.NewString(),
		URL:      url,
		TS:       time.Now().Unix(),
		Keyboard: model.NewKeyboardNavigationResult(),
		Images:   model.NewImageAltResult(),
		Forms:    model.NewFormAccessibilityResult(),
		Contrast: model.ContrastResult{Violations: []model.ContrastViolation{}},
	}
}

func (in *Inspector) runRules(ctx context.Context, report *model.AccessibilityReport) error {
	engine := in.RuleEngine()
	if err := engine.Init(ctx); err != nil {
		return fmt.Errorf("initialize rule engine: %w", err)
	}

	if in.isolate {
		violations, err := engine.Violations(ctx, rules.CheckOptions{})
		if err != nil {
			in.logger.Warn("rule check failed", zap.Error(err))
			report.Errors = map[string]string{"rules": err.Error()}
			return nil
		}
		report.Rules = violations
		return nil
	}

	err := engine.Check(ctx, rules.CheckOptions{})
	var verr *rules.ViolationError
	if errors.As(err, &verr) {
		report.Rules = verr.Violations
	}
	return err
}

// runCheck runs one local check and stores its result in report. A failed
// check leaves the report's empty result in place.
func (in *Inspector) runCheck(ctx context.Context, check string, report *model.AccessibilityReport) error {
	switch check {
	case model.CheckImages:
		r, err := in.CheckImageAltText(ctx)
		if err != nil {
			return err
		}
		report.Images = r
	case model.CheckForms:
		r, err := in.CheckFormAccessibility(ctx)
		if err != nil {
			return err
		}
		report.Forms = r
	case model.CheckContrast:
		r, err := in.TestColorContrast(ctx)
		if err != nil {
			return err
		}
		report.Contrast = r
	case model.CheckKeyboard:
		r, err := in.TestKeyboardNavigation(ctx)
		if err != nil {
			return err
		}
		report.Keyboard = r
	default:
		return fmt.Errorf("unknown check %q", check)
	}
	return nil
}
