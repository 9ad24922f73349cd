package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/server"
	"github.com/mj1618/focusprobe/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing focusprobe tools",
	Long: `Start a Model Context Protocol (MCP) server with the tools list_windows,
locate_search_window, check_search_field, and run_focus_probe. Tool calls are
serialized: only one of them reads or drives the desktop at a time.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Flags such as --app, --label, and --config set the defaults that tool
arguments override.

Examples:
  focusprobe serve
  focusprobe serve --transport streamable-http --port 8080
  focusprobe serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addProbeFlags(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Element tree cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	probeCfg, err := probeConfig(cmd)
	if err != nil {
		return err
	}

	provider, err := newProvider(cmd, probeCfg, fake.Options{})
	if err != nil {
		return err
	}

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Version:   version.Version,
		Probe:     probeCfg,
	}
	srv, err := server.New(provider, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return srv.Serve(cfg)
}
