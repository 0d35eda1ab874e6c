// Package cmd provides the CLI commands for univchart.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "univchart",
	Short: "Platform-aware manifest renderer",
	Long: `univchart - render one chart for any platform

univchart renders a catalog of resource templates against the capability
set of a target platform, so a single catalog can emit (for example) an
OpenShift Route where route.openshift.io/v1 is available and a plain
Ingress everywhere else.

RENDER COMMANDS
  render                Render the catalog to the output directory
    --dry-run, -n       Print documents to stdout without writing
    --values, -f <file> Apply values overlay (repeatable, later wins)
    --api-version <id>  Add a platform capability (repeatable)
    --force             Write output even with diagnostics
  templates             List catalog units with groups and guards

DIAGNOSTICS
  lint                  Validate the catalog before rendering

RECOVERY
  snapshots             List output snapshots
  snapshots restore     Roll the output directory back to a snapshot`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("univchart version {{.Version}}\n")
}
