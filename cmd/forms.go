package cmd

import (
	"context"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms <target>",
	Short: "Check form labelling",
	Long: `Report unlabeled inputs, forms whose radio or checkbox groups lack a
<fieldset>, and aria-labelledby attributes that reference missing ids.

Every input, textarea and select needs a label. --skip-unlabelable-types
leaves hidden, submit, button, reset and image inputs out.`,
	Args: cobra.ExactArgs(1),
	RunE: runForms,
}

func init() {
	rootCmd.AddCommand(formsCmd)
	formsCmd.Flags().Bool("skip-unlabelable-types", false, "Do not require labels on hidden, submit, button, reset and image inputs")
}

func runForms(cmd *cobra.Command, args []string) error {
	var extra []audit.Option
	if cmd.Flags().Changed("skip-unlabelable-types") {
		skip, _ := cmd.Flags().GetBool("skip-unlabelable-types")
		extra = append(extra, audit.WithSkipUnlabelableTypes(skip))
	}
	return runOnPage(cmd, args[0], func(ctx context.Context, in *audit.Inspector) (interface{}, error) {
		return in.CheckFormAccessibility(ctx)
	}, extra...)
}
