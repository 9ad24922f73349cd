package cmd

import (
	"time"

	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

// addProbeFlags registers the flags that scope a probe to one IDE.
func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().String("app", "", "IDE application name (e.g. \"IntelliJ IDEA\")")
	cmd.Flags().Int("pid", 0, "IDE process ID")
	cmd.Flags().String("label", probe.DefaultLabel, "Exact label text identifying the Go to Class popup")
	cmd.Flags().String("config", "", "Config file (.yaml, .yml, or .toml)")
}

// probeConfig builds the run configuration: defaults, then the --config
// file, then any flag the user set explicitly.
func probeConfig(cmd *cobra.Command) (probe.Config, error) {
	cfg := probe.DefaultConfig()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = probe.LoadConfig(path, cfg); err != nil {
			return cfg, err
		}
	}

	for name, dst := range map[string]*string{
		"app":       &cfg.App,
		"label":     &cfg.Label,
		"text":      &cfg.Text,
		"shortcut":  &cfg.Shortcut,
		"prelude":   &cfg.Prelude,
		"report":    &cfg.ReportPath,
		"artifacts": &cfg.ArtifactDir,
		"lock":      &cfg.LockPath,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	for name, dst := range map[string]*int{
		"pid":             &cfg.PID,
		"iterations":      &cfg.Iterations,
		"background-load": &cfg.BackgroundLoad,
		"editor-offset":   &cfg.EditorOffset,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}
	for name, dst := range map[string]*time.Duration{
		"delay":          &cfg.KeyDelay,
		"settle":         &cfg.Settle,
		"initial-settle": &cfg.InitialSettle,
		"idle-timeout":   &cfg.IdleTimeout,
	} {
		if flags.Changed(name) {
			ms, _ := flags.GetInt(name)
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg, nil
}

// newProvider returns the desktop provider, or a simulated IDE matching cfg
// when --simulate is set. sim tunes the simulated IDE's behavior. The
// simulated popup always shows the stock label so --label is still matched
// exactly.
func newProvider(cmd *cobra.Command, cfg probe.Config, sim fake.Options) (*platform.Provider, error) {
	simulate, _ := rootCmd.PersistentFlags().GetBool("simulate")
	if !simulate {
		return platform.NewProvider()
	}
	sim.App = cfg.App
	sim.PID = cfg.PID
	sim.Shortcut = cfg.Shortcut
	logger.Debug("using simulated IDE", "shortcut", cfg.Shortcut)
	return fake.NewDesktop(sim).Provider(), nil
}
