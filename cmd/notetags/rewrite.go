package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/notes"
	"github.com/jackzampolin/notetags/internal/output"
	"github.com/jackzampolin/notetags/internal/tags"
)

var (
	rewriteFields       []string
	rewriteCatalog      string
	rewriteProductType  string
	rewriteSkipValidate bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [file|-]",
	Short: "Rewrite one notes string for a set of fields",
	Long: `Rewrite one notes string read from a file or stdin.

Fields come from --fields, or from a catalog entry with --product-type.
The markup is validated first unless --skip-validate is set or
rewrite.require_valid is false; rewriting invalid markup is best-effort.

Examples:
  notetags rewrite --fields "Wood Type,Stone Color" notes.txt
  notetags rewrite --catalog catalog.yaml --product-type Sofa - < notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readNotes(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		fields := rewriteFields
		if len(fields) == 0 {
			if rewriteProductType == "" {
				return fmt.Errorf("pass --fields or --product-type")
			}
			path, err := catalogPath(rewriteCatalog)
			if err != nil {
				return err
			}
			catalog, err := notes.LoadCatalog(path)
			if err != nil {
				return err
			}
			var ok bool
			fields, ok = catalog.Fields(rewriteProductType)
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrUnknownProductType, rewriteProductType)
			}
		}

		if !rewriteSkipValidate && cfgManager.Get().Rewrite.RequireValid {
			result := tags.Validate(text)
			if !result.Valid {
				if err := output.WriteTo(os.Stderr, output.GetFormat(), result); err != nil {
					return err
				}
				return result.Err()
			}
		}

		logger.Debug("rewriting notes", "fields", len(fields))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tags.Rewrite(text, fields))
		return err
	},
}

func init() {
	rewriteCmd.Flags().StringSliceVar(&rewriteFields, "fields", nil, "comma-separated field names")
	rewriteCmd.Flags().StringVar(&rewriteCatalog, "catalog", "", "field catalog (default: catalog from config)")
	rewriteCmd.Flags().StringVar(&rewriteProductType, "product-type", "", "catalog product type to take fields from")
	rewriteCmd.Flags().BoolVar(&rewriteSkipValidate, "skip-validate", false, "rewrite without validating first")

	rootCmd.AddCommand(rewriteCmd)
}
