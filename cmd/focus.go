package cmd

import (
	"fmt"

	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

// FocusResult is the output of a successful focus.
type FocusResult struct {
	OK       bool   `yaml:"ok"                  json:"ok"`
	Action   string `yaml:"action"              json:"action"`
	App      string `yaml:"app,omitempty"       json:"app,omitempty"`
	Window   string `yaml:"window,omitempty"    json:"window,omitempty"`
	WindowID int    `yaml:"window_id,omitempty" json:"window_id,omitempty"`
	PID      int    `yaml:"pid,omitempty"       json:"pid,omitempty"`

	// Frontmost is the app the OS reports in front after focusing.
	Frontmost string `yaml:"frontmost,omitempty" json:"frontmost,omitempty"`
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring a window or application to the foreground",
	Long:  "Focus a window or application by name, title, window ID, or PID.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().String("app", "", "Focus application by name")
	focusCmd.Flags().String("window", "", "Focus window by title substring")
	focusCmd.Flags().Int("window-id", 0, "Focus window by system ID")
	focusCmd.Flags().Int("pid", 0, "Focus application by PID")
}

func runFocus(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	window, _ := cmd.Flags().GetString("window")
	windowID, _ := cmd.Flags().GetInt("window-id")
	pid, _ := cmd.Flags().GetInt("pid")

	if appName == "" && window == "" && windowID == 0 && pid == 0 {
		return fmt.Errorf("specify --app, --window, --window-id, or --pid")
	}

	provider, err := newProvider(cmd, probe.DefaultConfig(), fake.Options{})
	if err != nil {
		return err
	}
	if provider.WindowManager == nil {
		return fmt.Errorf("window management not available on this platform")
	}

	opts := platform.FocusOptions{
		App:      appName,
		Window:   window,
		WindowID: windowID,
		PID:      pid,
	}
	if err := provider.WindowManager.FocusWindow(opts); err != nil {
		return err
	}
	frontmost, frontPID, err := provider.WindowManager.GetFrontmostApp()
	if err != nil {
		logger.Warn("frontmost app unknown", "error", err)
	}
	logger.Debug("focused", "app", appName, "window", window, "window_id", windowID, "frontmost", frontmost, "frontmost_pid", frontPID)

	return output.Print(FocusResult{
		OK:        true,
		Action:    "focus",
		App:       appName,
		Window:    window,
		WindowID:  windowID,
		PID:       pid,
		Frontmost: frontmost,
	})
}
