package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/serhat-dirik/univchart/internal/catalog"
	"github.com/serhat-dirik/univchart/internal/ui"
)

var lintCatalog string

// lintCmd represents the lint command.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the catalog without rendering",
	Long: `Load and validate the template catalog: document metadata, guard
expressions, and unit names are checked, and suspicious shapes (empty
bodies, single-member exclusion groups) are reported as warnings.

Run this before committing catalog changes to catch malformed guards
early; a malformed guard is a catalog bug, not a render-time condition.`,
	Run: runLint,
}

func init() {
	lintCmd.Flags().StringVarP(&lintCatalog, "catalog", "c", "", "Catalog file or directory (default: <root>/catalog)")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) {
	cfg := resolveConfig(lintCatalog, "", "")

	units, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		ui.Error("Catalog invalid: %v", err)
		os.Exit(1)
	}

	warnings := 0
	groupSizes := make(map[string]int)

	for _, unit := range units {
		if unit.Group != "" {
			groupSizes[unit.Group]++
		}
		if unit.Body == "" {
			ui.Warning("unit %q has an empty body", unit.Name)
			warnings++
		}
	}

	for group, size := range groupSizes {
		if size < 2 {
			ui.Warning("exclusion group %q has a single member", group)
			warnings++
		}
	}

	if warnings > 0 {
		ui.Info("%d unit(s) valid, %d warning(s)", len(units), warnings)
		return
	}
	ui.Success("%d unit(s) valid", len(units))
}
