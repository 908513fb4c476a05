package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/outwriter"
)

// constantsCmd lists the built-in constant table.
var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "List the built-in high-precision constants.",
	Long: `Display the built-in constant table with names, aliases and values.

Every constant is stored to 100 significant digits, so any supported
precision setting reports fully trustworthy digits.

Examples:
  # Human-readable table
  constfit constants

  # Full-width values for scripting
  constfit constants --output csv`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintConstants(cfg); err != nil {
			contract.LogFatal("Cannot print constants", err)
		}
	},
}
