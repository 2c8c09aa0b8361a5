package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/output"
	"github.com/jackzampolin/notetags/internal/payload"
)

var (
	payloadNotes        string
	payloadCatalog      string
	payloadOut          string
	payloadModel        string
	payloadSkipValidate bool
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Render optimized notes as a batch request file",
	Long: `Optimize a notes document and write one chat-completions batch request
per entry as JSONL. The entry id becomes each request's custom_id.

Without --out the file is written under the home directory's payloads/
folder. Use --out - to write to stdout. Nothing is sent anywhere.

Examples:
  notetags payload --notes notes.yaml --catalog catalog.yaml
  notetags payload --notes notes.yaml --model gpt-4o-mini --out batch.jsonl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		optimized, runID, err := loadAndOptimize(cmd, payloadNotes, payloadCatalog, payloadSkipValidate)
		if err != nil {
			return err
		}

		cfg := cfgManager.Get()
		builder := payload.Builder{
			Model:          cfg.Payload.Model,
			Endpoint:       cfg.Payload.Endpoint,
			SystemPreamble: cfg.Payload.SystemPreamble,
		}
		if payloadModel != "" {
			builder.Model = payloadModel
		}

		reqs, err := builder.BuildAll(optimized)
		if err != nil {
			return err
		}

		if payloadOut == "-" {
			return payload.WriteJSONL(cmd.OutOrStdout(), reqs)
		}

		path := payloadOut
		if path == "" {
			if runID == "" {
				runID = uuid.New().String()
			}
			if err := homeDirectory.EnsureExists(); err != nil {
				return err
			}
			path = homeDirectory.PayloadPath(runID)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := payload.WriteJSONL(f, reqs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		logger.Info("payload written", "path", path, "requests", len(reqs), "model", builder.Model)
		return output.Write(map[string]any{
			"path":     path,
			"requests": len(reqs),
			"model":    builder.Model,
		})
	},
}

func init() {
	payloadCmd.Flags().StringVar(&payloadNotes, "notes", "", "notes document (YAML or JSON)")
	payloadCmd.Flags().StringVar(&payloadCatalog, "catalog", "", "field catalog (default: catalog from config)")
	payloadCmd.Flags().StringVar(&payloadOut, "out", "", "output file, or - for stdout (default: home payloads dir)")
	payloadCmd.Flags().StringVar(&payloadModel, "model", "", "model name (default: payload.model from config)")
	payloadCmd.Flags().BoolVar(&payloadSkipValidate, "skip-validate", false, "render without validating first")
	_ = payloadCmd.MarkFlagRequired("notes")

	rootCmd.AddCommand(payloadCmd)
}
