package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/serhat-dirik/univchart/internal/catalog"
	"github.com/serhat-dirik/univchart/internal/ui"
)

var templatesCatalog string

// templatesCmd represents the templates command.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List catalog units with groups and guards",
	Run:   runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesCatalog, "catalog", "c", "", "Catalog file or directory (default: <root>/catalog)")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) {
	cfg := resolveConfig(templatesCatalog, "", "")

	units, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		ui.Error("Failed to load catalog: %v", err)
		os.Exit(1)
	}

	if len(units) == 0 {
		ui.Warning("Catalog is empty")
		return
	}

	ui.Header("%-20s %-16s %s", "NAME", "GROUP", "GUARD")
	for _, unit := range units {
		group := unit.Group
		if group == "" {
			group = "-"
		}
		fmt.Printf("%-20s %-16s %s\n", unit.Name, group, unit.Guard.String())
	}
}
