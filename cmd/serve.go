package cmd

import (
	"fmt"
	"time"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/server"
	"github.com/hopngo/a11y-audit/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the audit checks",
	Long: `Start a Model Context Protocol (MCP) server that exposes the audit checks as
tools (audit, images, forms, contrast, keyboard, rules). Each tool takes a
target and an optional backend.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  a11y-audit serve
  a11y-audit serve --transport streamable-http --port 8080
  a11y-audit serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 5000, "DOM snapshot cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	opts, err := inspectorOptions()
	if err != nil {
		return err
	}
	mode, err := audit.ParseContrastMode(appConfig.Audit.ContrastMode)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Name:         "a11y-audit",
		Version:      version.Version,
		Transport:    transport,
		Port:         port,
		CacheTTL:     time.Duration(cacheTTLMs) * time.Millisecond,
		Backend:      appConfig.Backend,
		Open:         openBackend,
		Options:      opts,
		ContrastMode: mode,
		Forms:        audit.FormOptions{SkipUnlabelableTypes: appConfig.Audit.SkipUnlabelableTypes},
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.Serve()
}
