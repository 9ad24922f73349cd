package cmd

import (
	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the open Go to Class popup",
	Long: `Search the open windows, in enumeration order, for the first one whose widget
tree holds a label with exactly the --label text. If none does, wait once for
the UI to go idle and search again. Prints the window with its labels and text
fields.`,
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
	addProbeFlags(locateCmd)
	locateCmd.Flags().Bool("flat", false, "List elements with path breadcrumbs instead of nested")
	locateCmd.Flags().Int("idle-timeout", int(probe.DefaultConfig().IdleTimeout.Milliseconds()), "Max milliseconds to wait for the UI to go idle before the second lookup")
}

func runLocate(cmd *cobra.Command, args []string) error {
	cfg, err := probeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	flat, _ := cmd.Flags().GetBool("flat")

	provider, err := newProvider(cmd, cfg, fake.Options{Query: cfg.Text})
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	cmd.SilenceUsage = true
	result, err := probe.Locate(cmd.Context(), probe.NewLocator(provider, cfg, logger), flat)
	if printErr := output.Print(result); printErr != nil {
		return printErr
	}
	return err
}
