package cmd

import (
	"context"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/spf13/cobra"
)

var keyboardCmd = &cobra.Command{
	Use:   "keyboard <target>",
	Short: "Walk the page with Tab and detect focus traps",
	Long: `Press Tab repeatedly, recording the focused element after each press.
The walk stops when focus stays on the same element (a focus trap) or after
--max-steps presses.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeyboard,
}

func init() {
	rootCmd.AddCommand(keyboardCmd)
	keyboardCmd.Flags().Int("max-steps", 0, fmt.Sprintf("Tab press ceiling (default from config, %d)", audit.DefaultMaxTabSteps))
}

func runKeyboard(cmd *cobra.Command, args []string) error {
	var extra []audit.Option
	if cmd.Flags().Changed("max-steps") {
		n, _ := cmd.Flags().GetInt("max-steps")
		if n < 1 {
			return fmt.Errorf("--max-steps must be at least 1")
		}
		extra = append(extra, audit.WithMaxTabSteps(n))
	}
	return runOnPage(cmd, args[0], func(ctx context.Context, in *audit.Inspector) (interface{}, error) {
		return in.TestKeyboardNavigation(ctx)
	}, extra...)
}
