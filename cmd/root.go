package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hopngo/a11y-audit/internal/config"
	"github.com/hopngo/a11y-audit/internal/logging"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Register backends.
	_ "github.com/hopngo/a11y-audit/internal/platform/chromium"
	_ "github.com/hopngo/a11y-audit/internal/platform/static"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-audit",
	Short: "Audit web pages for accessibility problems",
	Long: `A CLI tool that loads a page in a browser (or parses its HTML) and checks
image alt text, form labelling, colour contrast, keyboard navigation and the
axe-core rule set, merging the results into one report.`,
	SilenceUsage: true,
}

var (
	// appConfig is the resolved configuration, flags applied.
	appConfig = config.Default()
	logger    = zap.NewNop()
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().String("backend", "", "Page backend: chromium, static")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("headless", true, "Run the browser without a window")
	rootCmd.PersistentFlags().String("viewport", "", "Browser viewport, e.g. 1280x720")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Page navigation timeout, e.g. 30s")
	rootCmd.PersistentFlags().String("debugger-url", "", "Connect to a running Chrome DevTools endpoint instead of launching one")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, used, err := config.Resolve(path)
		if err != nil {
			return err
		}
		if err := applyFlagOverrides(&cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		appConfig = cfg

		l, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
		if err != nil {
			return err
		}
		logger = l
		if used != "" {
			logger.Debug("loaded config", zap.String("path", used))
		}

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}

// applyFlagOverrides copies explicitly set persistent flags over the file
// configuration.
func applyFlagOverrides(cfg *config.Config) error {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("headless") {
		headless, _ := flags.GetBool("headless")
		cfg.Browser.Headless = &headless
	}
	if flags.Changed("viewport") {
		cfg.Browser.Viewport, _ = flags.GetString("viewport")
	}
	if flags.Changed("timeout") {
		timeout, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Browser.NavigationTimeout = timeout
	}
	if flags.Changed("debugger-url") {
		cfg.Browser.DebuggerURL, _ = flags.GetString("debugger-url")
	}
	return nil
}
