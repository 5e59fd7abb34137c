package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var auditCmd = &cobra.Command{
	Use:   "audit <target>...",
	Short: "Run every check and print one merged report",
	Long: `Run the axe-core rule set, then the image, form, contrast and keyboard
checks, and merge the results into one report.

By default the first failure stops the audit; rule violations print the
report and exit 1. With --isolate each failing check is recorded under
"errors" and the rest still run.

Several targets are audited concurrently (--concurrency) and printed as a
list of per-page results.

Examples:
  a11y-audit audit https://example.com
  a11y-audit audit --backend static --checks dom ./dist/index.html
  a11y-audit audit --isolate --baseline a11y.json --fail-on-findings https://example.com
  a11y-audit audit --backend static --watch ./site/index.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().Bool("isolate", false, "Record failing checks in the report instead of stopping")
	auditCmd.Flags().Bool("no-rules", false, "Skip the axe-core rule pass")
	auditCmd.Flags().StringSlice("checks", nil, "Checks to run: images, forms, contrast, keyboard, dom, all")
	auditCmd.Flags().String("baseline", "", "Compare findings with a baseline file and print the difference")
	auditCmd.Flags().String("save-baseline", "", "Write this run's findings to a baseline file")
	auditCmd.Flags().Bool("watch", false, "Re-run when local target files change and print what changed")
	auditCmd.Flags().Int("concurrency", 0, fmt.Sprintf("Pages audited at once (default from config, %d)", audit.DefaultConcurrency))
	auditCmd.Flags().Bool("fail-on-findings", false, "Exit 1 when there are findings (new findings with --baseline)")
}

// auditOutput is printed when a baseline is compared.
type auditOutput struct {
	Report model.AccessibilityReport `yaml:"report"         json:"report"`
	Diff   *model.ReportDiff         `yaml:"diff,omitempty" json:"diff,omitempty"`
}

func runAudit(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("isolate") {
		appConfig.Audit.IsolateChecks, _ = cmd.Flags().GetBool("isolate")
	}
	if cmd.Flags().Changed("checks") {
		appConfig.Audit.Checks, _ = cmd.Flags().GetStringSlice("checks")
	}
	if cmd.Flags().Changed("concurrency") {
		n, _ := cmd.Flags().GetInt("concurrency")
		if n < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}
		appConfig.Audit.Concurrency = n
	}
	noRules, _ := cmd.Flags().GetBool("no-rules")
	baseline, _ := cmd.Flags().GetString("baseline")
	saveBaseline, _ := cmd.Flags().GetString("save-baseline")
	watch, _ := cmd.Flags().GetBool("watch")
	failOnFindings, _ := cmd.Flags().GetBool("fail-on-findings")

	opts, err := inspectorOptions()
	if err != nil {
		return err
	}
	if noRules {
		opts = append(opts, audit.WithRules(false))
	}

	ctx := commandContext(cmd)
	if watch {
		return runWatch(ctx, args, opts)
	}
	if len(args) > 1 {
		if baseline != "" || saveBaseline != "" {
			return fmt.Errorf("--baseline and --save-baseline take a single target")
		}
		return auditMany(ctx, args, opts, failOnFindings)
	}

	report, err := auditTarget(ctx, args[0], opts)
	var verr *rules.ViolationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	findings := model.FlattenReport(report)

	out := auditOutput{Report: report}
	newFindings := len(findings)
	if baseline != "" {
		prev, lerr := model.LoadBaseline(baseline)
		if lerr != nil {
			return lerr
		}
		diff := model.DiffFindings(prev, findings)
		out.Diff = &diff
		newFindings = len(diff.Added)
	}
	if saveBaseline != "" {
		if serr := model.SaveBaseline(saveBaseline, findings); serr != nil {
			return serr
		}
		logger.Info("saved baseline", zap.String("path", saveBaseline), zap.Int("findings", len(findings)))
	}

	var printed interface{} = report
	if out.Diff != nil {
		printed = out
	}
	if perr := output.Print(printed); perr != nil {
		return perr
	}

	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	if failOnFindings && newFindings > 0 {
		return fmt.Errorf("%d accessibility finding(s)", newFindings)
	}
	return nil
}

// auditTarget opens target and runs one full audit pass.
func auditTarget(ctx context.Context, target string, opts []audit.Option) (model.AccessibilityReport, error) {
	provider, err := openPage(ctx, target)
	if err != nil {
		return model.AccessibilityReport{}, err
	}
	defer closeProvider(provider)
	return audit.New(provider, opts...).RunAudit(ctx)
}

func auditMany(ctx context.Context, targets []string, opts []audit.Option, failOnFindings bool) error {
	results, err := audit.RunMany(ctx, targets, openPage, opts...)
	if perr := output.Print(results); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}

	failed, findings := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		findings += len(model.FlattenReport(r.Report))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d page(s) failed", failed, len(results))
	}
	if failOnFindings && findings > 0 {
		return fmt.Errorf("%d accessibility finding(s) across %d page(s)", findings, len(results))
	}
	return nil
}
