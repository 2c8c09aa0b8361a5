package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/notes"
	"github.com/jackzampolin/notetags/internal/output"
)

var (
	checkNotes   string
	checkWorkers int
	checkWatch   bool
	checkSave    bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every entry of a notes document",
	Long: `Validate every entry of a notes document (YAML or JSON) in parallel.

Prints the report and exits non-zero if any entry is invalid. With --watch the
document is re-checked after every save until interrupted. With --save each
report is also written under the home directory's reports/ folder.

Examples:
  notetags check --notes notes.yaml
  notetags check --notes notes.json --workers 8 -o json
  notetags check --notes notes.yaml --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		entries, err := notes.LoadEntries(checkNotes)
		if err != nil {
			return err
		}

		report, err := checkAndReport(ctx, entries)
		if err != nil {
			return err
		}
		if !checkWatch {
			return report.Err()
		}

		return notes.Watch(ctx, checkNotes, notes.WatchConfig{Logger: logger}, func(entries []notes.Entry) {
			if _, err := checkAndReport(ctx, entries); err != nil && ctx.Err() == nil {
				logger.Error("re-check failed", "error", err)
			}
		})
	},
}

// checkAndReport runs a check, prints the report and optionally saves it.
func checkAndReport(ctx context.Context, entries []notes.Entry) (*notes.Report, error) {
	report, err := runCheck(ctx, entries, checkWorkers)
	if err != nil {
		return nil, err
	}
	if err := output.Write(report); err != nil {
		return nil, err
	}

	if checkSave {
		if err := homeDirectory.EnsureExists(); err != nil {
			return nil, err
		}
		path := homeDirectory.ReportPath(report.RunID)
		if err := output.WriteFile(path, report); err != nil {
			return nil, err
		}
		logger.Info("report saved", "path", path)
	}
	return report, nil
}

func init() {
	checkCmd.Flags().StringVar(&checkNotes, "notes", "", "notes document (YAML or JSON)")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "worker goroutines (default: check.workers from config)")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "re-check whenever the notes file changes")
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "save each report under the home directory")
	_ = checkCmd.MarkFlagRequired("notes")

	rootCmd.AddCommand(checkCmd)
}
