package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <target>",
	Short: "Capture the page with findings outlined",
	Long: `Capture a PNG of the viewport. Contrast violations are outlined in red and
images with missing or empty alt text in orange. Use --plain for an
unannotated capture.

Requires a backend that can render (chromium).`,
	Args: cobra.ExactArgs(1),
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Bool("plain", false, "Do not outline findings")
	screenshotCmd.Flags().Float64("scale", 1, "Device pixels per CSS pixel in the capture")
	screenshotCmd.Flags().String("mode", "", "Contrast mode for the outlines: identical, ratio")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	plain, _ := cmd.Flags().GetBool("plain")
	scale, _ := cmd.Flags().GetFloat64("scale")
	modeFlag, _ := cmd.Flags().GetString("mode")

	ctx := commandContext(cmd)
	opts, err := inspectorOptions()
	if err != nil {
		return err
	}
	if modeFlag != "" {
		mode, err := audit.ParseContrastMode(modeFlag)
		if err != nil {
			return err
		}
		opts = append(opts, audit.WithContrastMode(mode))
	}

	provider, err := openPage(ctx, args[0])
	if err != nil {
		return err
	}
	defer closeProvider(provider)
	if provider.Screenshotter == nil {
		return fmt.Errorf("screenshot not supported by the %s backend", provider.Backend)
	}

	data, err := provider.Screenshotter.Screenshot(ctx)
	if err != nil {
		return err
	}

	if !plain && provider.DOM != nil {
		snap, err := provider.DOM.Snapshot(ctx)
		if err != nil {
			return err
		}
		in := audit.New(provider, opts...)
		images, err := in.CheckImageAltText(ctx)
		if err != nil {
			return err
		}
		contrast, err := in.TestColorContrast(ctx)
		if err != nil {
			return err
		}
		marks := output.MarksForReport(snap, model.AccessibilityReport{Images: images, Contrast: contrast})
		logger.Debug("annotating screenshot", zap.Int("marks", len(marks)))
		if data, err = output.Annotate(data, marks, scale); err != nil {
			return err
		}
	}

	if path != "" {
		return os.WriteFile(path, data, 0644)
	}

	// Default: write to stdout as base64 for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
