package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/probe"
	"gopkg.in/yaml.v3"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("ok: false\nerror: %s", err)
	}
	return string(b)
}

// probeConfig overlays the request's arguments on the server defaults.
func (s *Server) probeConfig(params map[string]interface{}) probe.Config {
	cfg := s.defaults
	cfg.App = stringParam(params, "app", cfg.App)
	cfg.PID = intParam(params, "pid", cfg.PID)
	cfg.Label = stringParam(params, "label", cfg.Label)
	cfg.Text = stringParam(params, "text", cfg.Text)
	cfg.Iterations = intParam(params, "iterations", cfg.Iterations)
	cfg.Shortcut = stringParam(params, "shortcut", cfg.Shortcut)
	cfg.KeyDelay = msParam(params, "delay", cfg.KeyDelay)
	cfg.Settle = msParam(params, "settle", cfg.Settle)
	cfg.BackgroundLoad = intParam(params, "background-load", cfg.BackgroundLoad)
	cfg.ArtifactDir = stringParam(params, "artifacts", cfg.ArtifactDir)
	return cfg
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.provider.Reader.ListWindows(platform.ListOptions{
		App: stringParam(params, "app", ""),
		PID: intParam(params, "pid", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(windows)), nil
}

func (s *Server) handleLocate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cfg := s.probeConfig(params)
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	flat := boolParam(params, "flat", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result, err := probe.Locate(ctx, probe.NewLocator(s.cachedProvider(), cfg, s.log), flat)
	if err != nil {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cfg := s.probeConfig(params)
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	expected, ok := params["expected"]
	if !ok {
		return mcp.NewToolResultError("expected is required"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	// The assertion compares the field's current text, so it reads live.
	result, err := probe.Check(ctx, probe.NewLocator(s.provider, cfg, s.log), fmt.Sprint(expected))
	if err != nil {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleRunProbe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := s.probeConfig(request.GetArguments())

	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	defer s.cache.InvalidateAll()

	driver, err := probe.NewDriver(s.provider, cfg, s.log)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := driver.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(resultToText(report)), nil
	}
	return mcp.NewToolResultText(resultToText(report)), nil
}
