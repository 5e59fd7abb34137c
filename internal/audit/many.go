package audit

import (
	"context"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OpenFunc opens one target for auditing.
type OpenFunc func(ctx context.Context, target string) (*platform.Provider, error)

// PageResult is the outcome of auditing one target.
type PageResult struct {
	Target string                    `yaml:"target"          json:"target"`
	Report model.AccessibilityReport `yaml:"report"          json:"report"`
	Err    error                     `yaml:"-"               json:"-"`
	Error  string                    `yaml:"error,omitempty" json:"error,omitempty"`
}

// RunMany audits targets concurrently, one page and one Inspector per target,
// at most WithConcurrency at a time. Results are in input order. A failing
// page does not stop the others; its error is in PageResult.Err. The
// returned error is non-nil only when ctx ends first.
func RunMany(ctx context.Context, targets []string, open OpenFunc, opts ...Option) ([]PageResult, error) {
	settings := New(nil, opts...)
	results := make([]PageResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.concurrency)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = auditOne(gctx, target, open, opts)
			if results[i].Err != nil {
				settings.logger.Warn("page audit failed",
					zap.String("target", target), zap.Error(results[i].Err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func auditOne(ctx context.Context, target string, open OpenFunc, opts []Option) PageResult {
	res := PageResult{Target: target}
	p, err := open(ctx, target)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", target, err)
		res.Error = res.Err.Error()
		return res
	}
	defer p.Close()

	res.Report, res.Err = New(p, opts...).RunAudit(ctx)
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	return res
}
