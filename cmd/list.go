package cmd

import (
	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows",
	Long:  "List on-screen windows in enumeration order with their app name, title, PID, window ID, and bounds. This is the order the locator searches in.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("apps", false, "List running applications instead of windows")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("app", "", "Filter windows by app name")
}

// appEntry is the output for --apps mode.
type appEntry struct {
	App string `yaml:"app" json:"app"`
	PID int    `yaml:"pid" json:"pid"`
}

func runList(cmd *cobra.Command, args []string) error {
	apps, _ := cmd.Flags().GetBool("apps")
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")

	provider, err := newProvider(cmd, probe.DefaultConfig(), fake.Options{})
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	windows, err := provider.Reader.ListWindows(platform.ListOptions{PID: pid, App: appName})
	if err != nil {
		return err
	}

	if apps {
		seen := make(map[int]bool)
		entries := []appEntry{}
		for _, w := range windows {
			if !seen[w.PID] {
				seen[w.PID] = true
				entries = append(entries, appEntry{App: w.App, PID: w.PID})
			}
		}
		return output.Print(entries)
	}
	return output.Print(windows)
}
