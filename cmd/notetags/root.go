package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/config"
	"github.com/jackzampolin/notetags/internal/home"
	"github.com/jackzampolin/notetags/internal/output"
	"github.com/jackzampolin/notetags/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

// Populated by the root command before any subcommand runs.
var (
	homeDirectory *home.Dir
	cfgManager    *config.Manager
	logger        *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notetags",
	Short: "Validate and rewrite tagged extraction notes",
	Long: `Notetags checks and rewrites extraction notes written in a small tag markup.

Notes wrap guidance in keyword blocks and name alternatives in curly lists:

  Read the label. <Color, Finish> Use {color, finish}. </>

A block survives rewriting only when one of its keywords matches a field of
the product type (case-insensitive substring); its curly lists are replaced
by the matching field names joined as "A, B, or C". Other blocks are removed.

Commands:
  - validate/rewrite a single notes string
  - check a notes document in bulk, optionally re-checking on change
  - optimize a notes document against a field catalog
  - render optimized notes as a chat-completions batch file`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		homeDirectory = h

		mgr, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		cfgManager = mgr
		cfg := mgr.Get()

		// Flags win over config
		format := cfg.Output.Format
		if cmd.Flags().Changed("output") {
			format = outputFormat
		}
		if _, err := output.ParseFormat(format); err != nil {
			return err
		}
		output.SetFormat(format)

		level := cfg.LogLevel()
		if cmd.Flags().Changed("log-level") {
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.notetags/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "notetags home directory (default: ~/.notetags)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	rootCmd.AddCommand(versionCmd)
}
