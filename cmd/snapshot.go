package cmd

import (
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <target>",
	Short: "Dump the page's DOM snapshot",
	Long: `Print every element the checks see: tag, id, classes, attributes, parent,
computed colours, bounds and visible text. Use --visible to drop hidden
elements and --focusable to list only keyboard-reachable ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("output", "", "Write the snapshot to this file as JSON instead of printing it")
	snapshotCmd.Flags().Bool("visible", false, "Only include rendered, visible elements")
	snapshotCmd.Flags().Bool("focusable", false, "Only include elements in sequential focus order")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	visible, _ := cmd.Flags().GetBool("visible")
	focusable, _ := cmd.Flags().GetBool("focusable")

	ctx := commandContext(cmd)
	provider, err := openPage(ctx, args[0])
	if err != nil {
		return err
	}
	defer closeProvider(provider)
	if provider.DOM == nil {
		return platform.ErrNotAvailable
	}

	snap, err := provider.DOM.Snapshot(ctx)
	if err != nil {
		return err
	}
	switch {
	case focusable:
		snap.Elements = model.SequentialFocusOrder(snap)
	case visible:
		snap.Elements = model.FilterVisible(snap)
	}

	if path != "" {
		if err := model.SaveSnapshot(path, snap); err != nil {
			return err
		}
		logger.Info("wrote snapshot", zap.String("path", path), zap.Int("elements", len(snap.Elements)))
		return nil
	}
	return output.Print(snap)
}
