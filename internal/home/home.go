package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the notetags home directory.
	DefaultDirName = ".notetags"

	// ReportsDirName is the subdirectory for saved check reports.
	ReportsDirName = "reports"

	// PayloadsDirName is the subdirectory for rendered batch files.
	PayloadsDirName = "payloads"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the notetags home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.notetags).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ReportsDir returns the directory for saved check reports.
func (d *Dir) ReportsDir() string {
	return filepath.Join(d.path, ReportsDirName)
}

// ReportPath returns the path of the saved report for a check run.
func (d *Dir) ReportPath(runID string) string {
	return filepath.Join(d.ReportsDir(), fmt.Sprintf("check_%s.yaml", runID))
}

// PayloadsDir returns the directory for rendered batch files.
func (d *Dir) PayloadsDir() string {
	return filepath.Join(d.path, PayloadsDirName)
}

// PayloadPath returns the path of the batch file for a run.
func (d *Dir) PayloadPath(runID string) string {
	return filepath.Join(d.PayloadsDir(), fmt.Sprintf("batch_%s.jsonl", runID))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.ReportsDir(), d.PayloadsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
