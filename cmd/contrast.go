package cmd

import (
	"context"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/spf13/cobra"
)

var contrastCmd = &cobra.Command{
	Use:   "contrast <target>",
	Short: "Check colour contrast",
	Long: `Sample every element's foreground and background colour.

Modes:
  identical  flag elements whose colour equals their background (default)
  ratio      flag visible text below the WCAG 4.5:1 contrast ratio`,
	Args: cobra.ExactArgs(1),
	RunE: runContrast,
}

func init() {
	rootCmd.AddCommand(contrastCmd)
	contrastCmd.Flags().String("mode", "", "Contrast mode: identical, ratio (default from config)")
}

func runContrast(cmd *cobra.Command, args []string) error {
	var extra []audit.Option
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		mode, err := audit.ParseContrastMode(m)
		if err != nil {
			return err
		}
		extra = append(extra, audit.WithContrastMode(mode))
	}
	return runOnPage(cmd, args[0], func(ctx context.Context, in *audit.Inspector) (interface{}, error) {
		return in.TestColorContrast(ctx)
	}, extra...)
}
