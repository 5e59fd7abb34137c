package cmd

import (
	"errors"
	"os"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rulesCmd = &cobra.Command{
	Use:   "rules <target>",
	Short: "Run the axe-core rule set",
	Long: `Inject axe-core into the page, apply the configured rule allow-list, and
list the violations. With --strict any violation is a failure (exit 1).

Requires a backend that can run scripts (chromium).

Examples:
  a11y-audit rules https://example.com
  a11y-audit rules --strict --html-report axe.html ./dist/index.html
  a11y-audit rules --selector main --tags wcag2a https://example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("strict", false, "Fail when any violation is found")
	rulesCmd.Flags().String("html-report", "", "Write a detailed HTML report to this file")
	rulesCmd.Flags().String("selector", "", "Only check elements matching this CSS selector")
	rulesCmd.Flags().StringSlice("tags", nil, "Rule tags to run (default from config)")
}

func runRules(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	htmlReport, _ := cmd.Flags().GetString("html-report")
	selector, _ := cmd.Flags().GetString("selector")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	ctx := commandContext(cmd)
	opts, err := inspectorOptions()
	if err != nil {
		return err
	}
	provider, err := openPage(ctx, args[0])
	if err != nil {
		return err
	}
	defer closeProvider(provider)

	engine := audit.New(provider, opts...).RuleEngine()
	if err := engine.Init(ctx); err != nil {
		return err
	}
	checkOpts := rules.CheckOptions{Selector: selector, Tags: tags}

	if !strict {
		violations, err := engine.Violations(ctx, checkOpts)
		if err != nil {
			return err
		}
		if err := writeHTMLReport(htmlReport, violations); err != nil {
			return err
		}
		return output.Print(violations)
	}

	err = engine.Check(ctx, checkOpts)
	var verr *rules.ViolationError
	if !errors.As(err, &verr) {
		if err != nil {
			return err
		}
		return output.Print([]model.RuleViolation{})
	}
	if htmlReport != "" {
		if werr := os.WriteFile(htmlReport, []byte(verr.HTML), 0644); werr != nil {
			return werr
		}
		logger.Info("wrote HTML report", zap.String("path", htmlReport))
	}
	return printViolationReport(verr.Violations, err)
}

// writeHTMLReport renders violations to path. An empty path is a no-op.
func writeHTMLReport(path string, violations []model.RuleViolation) error {
	if path == "" {
		return nil
	}
	html, err := rules.RenderHTML(violations)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return err
	}
	logger.Info("wrote HTML report", zap.String("path", path))
	return nil
}
