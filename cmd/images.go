package cmd

import (
	"context"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/spf13/cobra"
)

var imagesCmd = &cobra.Command{
	Use:   "images <target>",
	Short: "Check image alt text",
	Long: `Classify every <img> on the page:

  missingAlt        no alt attribute
  emptyAlt          alt="" without aria-hidden
  decorativeImages  alt="" with aria-hidden="true"

Images are named by src, or image-N when src is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	return runOnPage(cmd, args[0], func(ctx context.Context, in *audit.Inspector) (interface{}, error) {
		return in.CheckImageAltText(ctx)
	})
}
