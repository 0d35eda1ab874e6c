package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/serhat-dirik/univchart/internal/catalog"
	"github.com/serhat-dirik/univchart/internal/lock"
	"github.com/serhat-dirik/univchart/internal/render"
	"github.com/serhat-dirik/univchart/internal/snapshot"
	"github.com/serhat-dirik/univchart/internal/ui"
)

var (
	renderCatalog      string
	renderCapabilities string
	renderAPIVersions  []string
	renderValues       []string
	renderOutput       string
	renderDryRun       bool
	renderForce        bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the catalog for the target platform",
	Long: `Render every eligible template unit and write the documents to the
output directory (one file per unit, previous output snapshotted first).

Which units render is decided by their guards, evaluated against the
platform capability set and the merged values. Diagnostics such as
group-exclusivity violations block the write unless --force is given.

Examples:
  # Render with project defaults (catalog/, values.yaml, capabilities.yaml)
  univchart render

  # Preview what an OpenShift cluster would get
  univchart render -n --api-version route.openshift.io/v1

  # Production overlay on top of the default values
  univchart render -f values.yaml -f prod.yaml`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderCatalog, "catalog", "c", "", "Catalog file or directory (default: <root>/catalog)")
	renderCmd.Flags().StringVar(&renderCapabilities, "capabilities", "", "Capabilities file (default: <root>/capabilities.yaml if present)")
	renderCmd.Flags().StringArrayVar(&renderAPIVersions, "api-version", nil, "Add a capability identifier (repeatable)")
	renderCmd.Flags().StringArrayVarP(&renderValues, "values", "f", nil, "Values overlay file (repeatable, later files win)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output directory (default: <root>/output)")
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "Print documents to stdout without writing")
	renderCmd.Flags().BoolVar(&renderForce, "force", false, "Write output even when diagnostics are present")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	cfg := resolveConfig(renderCatalog, renderCapabilities, renderOutput)

	units, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		ui.Error("Failed to load catalog: %v", err)
		os.Exit(1)
	}

	caps, err := loadCapabilities(cfg.CapabilitiesFile, renderAPIVersions)
	if err != nil {
		ui.Error("Failed to load capabilities: %v", err)
		os.Exit(1)
	}

	valueFiles := renderValues
	if len(valueFiles) == 0 && cfg.ValuesFile != "" {
		valueFiles = []string{cfg.ValuesFile}
	}
	values, err := catalog.LoadValues(valueFiles...)
	if err != nil {
		ui.Error("Failed to load values: %v", err)
		os.Exit(1)
	}

	result := render.RenderAll(units, caps, render.NewValueStore(values), render.DefaultHelpers())
	reportResult(&result)

	if renderDryRun {
		for _, doc := range result.Documents {
			fmt.Println("---")
			fmt.Println(doc.Content)
		}
		if !result.Clean() {
			os.Exit(1)
		}
		return
	}

	if !result.Clean() && !renderForce {
		ui.Error("Refusing to write output (use --force to override)")
		os.Exit(1)
	}

	err = lock.WithLock(cfg.Root, "render", func() error {
		if name, err := snapshot.Create(cfg.Root, cfg.OutputDir); err != nil {
			return fmt.Errorf("snapshot previous output: %w", err)
		} else if name != "" {
			ui.Info("Snapshotted previous output as %s", name)
		}
		return writeDocuments(result.Documents, cfg.OutputDir)
	})
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	ui.Success("Wrote %d document(s) to %s", len(result.Documents), cfg.OutputDir)
	if !result.Clean() {
		os.Exit(1)
	}
}

// loadCapabilities builds the capability set from the optional
// capabilities file plus any --api-version additions.
func loadCapabilities(path string, extra []string) (render.CapabilitySet, error) {
	caps := render.NewCapabilitySet(extra...)
	if path == "" {
		return caps, nil
	}

	fromFile, err := catalog.LoadCapabilities(path)
	if err != nil {
		return nil, err
	}
	for id := range fromFile {
		caps[id] = struct{}{}
	}

	return caps, nil
}

// reportResult prints the per-unit outcome of a render pass.
func reportResult(result *render.RenderResult) {
	for _, name := range result.Skipped {
		ui.Info("skipped  %s", name)
	}
	for _, doc := range result.Documents {
		ui.Success("rendered %s", doc.Name)
	}
	for _, failure := range result.Failed {
		ui.Error("failed   %s: %v", failure.Unit, failure.Err)
	}
	for _, diag := range result.Diagnostics {
		ui.Warning("%s: %s", diag.Kind, diag.Message)
	}
}

// writeDocuments writes one file per rendered document.
func writeDocuments(docs []render.RenderedDocument, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, doc := range docs {
		content := doc.Content
		if content == "" || content[len(content)-1] != '\n' {
			content += "\n"
		}

		path := filepath.Join(outputDir, doc.Name+".yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}
