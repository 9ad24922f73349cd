package cmd

import (
	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Assert the Go to Class popup's text field",
	Long: `Locate the open Go to Class popup and assert that its text field (the first
text field, breadth-first) holds exactly the --expect text.

Exits 0 when the field matches and 1 when it does not or the popup cannot be
found.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addProbeFlags(checkCmd)
	checkCmd.Flags().String("expect", "", "Expected field text, exact and case-sensitive (default: the configured probe text)")
	checkCmd.Flags().Int("idle-timeout", int(probe.DefaultConfig().IdleTimeout.Milliseconds()), "Max milliseconds to wait for the UI to go idle before the second lookup")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := probeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	expected := cfg.Text
	if cmd.Flags().Changed("expect") {
		expected, _ = cmd.Flags().GetString("expect")
	}

	provider, err := newProvider(cmd, cfg, fake.Options{Query: cfg.Text})
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	cmd.SilenceUsage = true
	result, err := probe.Check(cmd.Context(), probe.NewLocator(provider, cfg, logger), expected)
	if printErr := output.Print(result); printErr != nil {
		return printErr
	}
	return err
}
