package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/platform/static"
	"github.com/hopngo/a11y-audit/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openOptions builds backend options for target from the resolved config.
func openOptions(target string) (platform.OpenOptions, error) {
	vp, err := platform.ParseViewport(appConfig.Browser.Viewport)
	if err != nil {
		return platform.OpenOptions{}, err
	}
	return platform.OpenOptions{
		Target:            target,
		Headless:          appConfig.HeadlessOrDefault(),
		Viewport:          vp,
		NavigationTimeout: appConfig.Browser.NavigationTimeout,
		DebuggerURL:       appConfig.Browser.DebuggerURL,
		ChromeBin:         appConfig.Browser.ChromeBin,
		Logger:            logger,
	}, nil
}

// openBackend opens target with the named backend.
func openBackend(ctx context.Context, backend, target string) (*platform.Provider, error) {
	opts, err := openOptions(target)
	if err != nil {
		return nil, err
	}
	return platform.Open(ctx, backend, opts)
}

// openPage opens target with the configured backend.
func openPage(ctx context.Context, target string) (*platform.Provider, error) {
	return openBackend(ctx, appConfig.Backend, target)
}

// inspectorOptions converts the resolved config into Inspector options. The
// rule pass is off for the static backend, which cannot run scripts.
func inspectorOptions() ([]audit.Option, error) {
	mode, err := audit.ParseContrastMode(appConfig.Audit.ContrastMode)
	if err != nil {
		return nil, err
	}
	checks, err := model.ExpandChecks(appConfig.Audit.Checks)
	if err != nil {
		return nil, err
	}
	return []audit.Option{
		audit.WithLogger(logger),
		audit.WithMaxTabSteps(appConfig.Audit.MaxTabSteps),
		audit.WithContrastMode(mode),
		audit.WithIsolation(appConfig.Audit.IsolateChecks),
		audit.WithChecks(checks),
		audit.WithRuleConfig(appConfig.RuleConfig()),
		audit.WithConcurrency(appConfig.Audit.Concurrency),
		audit.WithSkipUnlabelableTypes(appConfig.Audit.SkipUnlabelableTypes),
		audit.WithRules(appConfig.Backend != static.BackendName),
	}, nil
}

// runOnPage opens target, runs fn against an Inspector bound to it, and
// prints the result.
func runOnPage(cmd *cobra.Command, target string, fn func(context.Context, *audit.Inspector) (interface{}, error), extra ...audit.Option) error {
	ctx := commandContext(cmd)
	opts, err := inspectorOptions()
	if err != nil {
		return err
	}

	provider, err := openPage(ctx, target)
	if err != nil {
		return err
	}
	defer closeProvider(provider)

	result, err := fn(ctx, audit.New(provider, append(opts, extra...)...))
	if err != nil {
		return err
	}
	return output.Print(result)
}

// closeProvider releases a page, logging rather than returning failures.
func closeProvider(p *platform.Provider) {
	if err := p.Close(); err != nil {
		logger.Warn("failed to close page", zap.String("target", p.Target), zap.Error(err))
	}
}

// printViolationReport prints a report and passes through err. Rule
// violations still produce output before the non-zero exit.
func printViolationReport(v interface{}, err error) error {
	var verr *rules.ViolationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if perr := output.Print(v); perr != nil {
		return perr
	}
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	return nil
}
