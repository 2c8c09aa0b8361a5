package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/notes"
	"github.com/jackzampolin/notetags/internal/output"
)

var (
	optimizeNotes        string
	optimizeCatalog      string
	optimizeSkipValidate bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite every entry of a notes document for its product type",
	Long: `Rewrite every entry of a notes document with the fields its product
type has in the catalog, plus any fields shared under "*".

The document is checked first; any invalid entry aborts the run.

Examples:
  notetags optimize --notes notes.yaml --catalog catalog.yaml
  notetags optimize --notes notes.yaml -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		optimized, _, err := loadAndOptimize(cmd, optimizeNotes, optimizeCatalog, optimizeSkipValidate)
		if err != nil {
			return err
		}
		return output.Write(optimized)
	},
}

// loadAndOptimize loads both documents, gates on validation and rewrites.
func loadAndOptimize(cmd *cobra.Command, notesPath, catalogFlag string, skip bool) ([]notes.Optimized, string, error) {
	entries, err := notes.LoadEntries(notesPath)
	if err != nil {
		return nil, "", err
	}
	path, err := catalogPath(catalogFlag)
	if err != nil {
		return nil, "", err
	}
	catalog, err := notes.LoadCatalog(path)
	if err != nil {
		return nil, "", err
	}

	runID, err := gate(cmd.Context(), entries, skip)
	if err != nil {
		return nil, "", err
	}

	optimized, err := notes.Optimize(entries, catalog)
	if err != nil {
		return nil, "", err
	}
	logger.Info("notes optimized", "entries", len(optimized))
	return optimized, runID, nil
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeNotes, "notes", "", "notes document (YAML or JSON)")
	optimizeCmd.Flags().StringVar(&optimizeCatalog, "catalog", "", "field catalog (default: catalog from config)")
	optimizeCmd.Flags().BoolVar(&optimizeSkipValidate, "skip-validate", false, "rewrite without validating first")
	_ = optimizeCmd.MarkFlagRequired("notes")

	rootCmd.AddCommand(optimizeCmd)
}
