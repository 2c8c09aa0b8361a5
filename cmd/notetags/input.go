package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackzampolin/notetags/internal/notes"
	"github.com/jackzampolin/notetags/internal/output"
)

// readNotes reads a notes string from the named file, or stdin for "-" or no argument.
func readNotes(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

// catalogPath returns the --catalog flag value, falling back to config.
func catalogPath(flag string) (string, error) {
	path := flag
	if path == "" {
		path = cfgManager.Get().CatalogPath()
	}
	if path == "" {
		return "", fmt.Errorf("no field catalog: pass --catalog or set catalog in config")
	}
	return path, nil
}

// runCheck validates entries with the configured worker count.
func runCheck(ctx context.Context, entries []notes.Entry, workers int) (*notes.Report, error) {
	if workers <= 0 {
		workers = cfgManager.Get().Check.Workers
	}
	checker := notes.NewChecker(notes.CheckerConfig{
		Logger:  logger,
		Workers: workers,
	})
	return checker.Check(ctx, entries)
}

// gate checks entries before they are rewritten. Invalid documents print their
// failures and return an error wrapping notes.ErrInvalidNotes. The returned run
// id is empty when validation is skipped.
func gate(ctx context.Context, entries []notes.Entry, skip bool) (string, error) {
	if skip || !cfgManager.Get().Rewrite.RequireValid {
		logger.Warn("skipping validation", "entries", len(entries))
		return "", nil
	}

	report, err := runCheck(ctx, entries, 0)
	if err != nil {
		return "", err
	}
	if err := report.Err(); err != nil {
		if werr := output.WriteTo(os.Stderr, output.GetFormat(), report.Failed()); werr != nil {
			logger.Error("failed to print failures", "error", werr)
		}
		return "", err
	}
	return report.RunID, nil
}
