package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/notetags/internal/output"
	"github.com/jackzampolin/notetags/internal/tags"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate the tag markup of one notes string",
	Long: `Validate one notes string read from a file or stdin.

Prints the validation result (blocks and errors with character offsets) and exits
non-zero when the markup is invalid.

Examples:
  notetags validate notes.txt
  echo '<Color> Use {color}. </>' | notetags validate
  notetags validate -o json - < notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readNotes(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		result := tags.Validate(text)
		if err := output.Write(result); err != nil {
			return err
		}
		return result.Err()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
