package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mj1618/focusprobe/internal/output"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focusprobe",
	Short: "Probe an IDE's Go to Class popup for focus regressions",
	Long: `focusprobe drives an IntelliJ-family IDE through the OS accessibility layer.
It opens the Go to Class popup, types a fixed string, checks that the popup's
text field received it, and closes the popup, over and over. A keystroke that
lands anywhere else is reported as a focus regression.`,
}

// logger is replaced in PersistentPreRunE once --log-level is known.
var logger = slog.New(slog.DiscardHandler)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("simulate", false, "Drive a simulated IDE instead of the real desktop")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		simulate, _ := rootCmd.PersistentFlags().GetBool("simulate")
		if !simulate && platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logger = setupLogger(level, cmd.ErrOrStderr())
		return nil
	}
}

// setupLogger returns a text logger on w. Unknown levels mean info.
func setupLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
