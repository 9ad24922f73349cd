package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Go to Class focus regression",
	Long: `Focus the IDE editor, then repeatedly open Go to Class, type the probe text,
verify the popup's text field holds it exactly, and close the popup.

The run stops at the first window that cannot be found or field that does not
match, prints the report, and exits non-zero. Flags override values from
--config, which override the built-in defaults.

Examples:
  focusprobe run --app "IntelliJ IDEA"
  focusprobe run --pid 4242 --iterations 50 --report run.json --artifacts ./failures
  focusprobe run --simulate --delay 0 --settle 0`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addProbeFlags(runCmd)
	def := probe.DefaultConfig()
	runCmd.Flags().Int("iterations", def.Iterations, "Number of open/type/verify/close cycles")
	runCmd.Flags().String("text", def.Text, "Text typed into the popup")
	runCmd.Flags().String("shortcut", def.Shortcut, "Key combo that opens Go to Class")
	runCmd.Flags().String("prelude", def.Prelude, "Key combo pressed before the shortcut on every opening (\"\" to skip)")
	runCmd.Flags().Int("delay", int(def.KeyDelay.Milliseconds()), "Milliseconds between keystrokes")
	runCmd.Flags().Int("settle", int(def.Settle.Milliseconds()), "Milliseconds to wait after typing")
	runCmd.Flags().Int("initial-settle", int(def.InitialSettle.Milliseconds()), "Milliseconds to wait before focusing the editor")
	runCmd.Flags().Int("idle-timeout", int(def.IdleTimeout.Milliseconds()), "Max milliseconds to wait for the UI to go idle before the second lookup")
	runCmd.Flags().Int("editor-offset", def.EditorOffset, "Caret offset set in the editor after each focus")
	runCmd.Flags().String("report", "", "Also write the report to this file (.json for JSON, YAML otherwise)")
	runCmd.Flags().String("artifacts", "", "Directory for annotated failure screenshots")
	runCmd.Flags().Int("background-load", 0, "CPU busy workers to run during the probe")
	runCmd.Flags().String("lock", def.LockPath, "Lock file that keeps concurrent probes apart")
	runCmd.Flags().Int("simulate-focus-loss", 0, "With --simulate, open the popup without focus from the n-th opening on")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := probeConfig(cmd)
	if err != nil {
		return err
	}
	simulate, _ := rootCmd.PersistentFlags().GetBool("simulate")
	if !simulate && cfg.App == "" && cfg.PID == 0 {
		return fmt.Errorf("specify --app or --pid (or use --simulate)")
	}
	focusLoss, _ := cmd.Flags().GetInt("simulate-focus-loss")

	provider, err := newProvider(cmd, cfg, fake.Options{FocusLossAfter: focusLoss})
	if err != nil {
		return err
	}
	driver, err := probe.NewDriver(provider, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SilenceUsage = true
	report, runErr := driver.Run(ctx)
	if cfg.ReportPath != "" {
		if err := output.WriteFile(cfg.ReportPath, report); err != nil {
			logger.Error("report not written", "path", cfg.ReportPath, "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	if err := output.Print(report); err != nil {
		return err
	}
	return runErr
}
