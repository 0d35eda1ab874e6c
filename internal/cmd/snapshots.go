package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/serhat-dirik/univchart/internal/lock"
	"github.com/serhat-dirik/univchart/internal/snapshot"
	"github.com/serhat-dirik/univchart/internal/ui"
)

var snapshotsOutput string

// snapshotsCmd represents the snapshots command.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List output snapshots",
	Run:   runSnapshots,
}

// snapshotsRestoreCmd rolls the output directory back to a snapshot.
var snapshotsRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore the output directory from a snapshot",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshotsRestore,
}

func init() {
	snapshotsCmd.PersistentFlags().StringVarP(&snapshotsOutput, "output", "o", "", "Output directory (default: <root>/output)")

	snapshotsCmd.AddCommand(snapshotsRestoreCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) {
	cfg := resolveConfig("", "", snapshotsOutput)

	snapshots, err := snapshot.List(cfg.Root)
	if err != nil {
		ui.Error("Failed to list snapshots: %v", err)
		os.Exit(1)
	}

	if len(snapshots) == 0 {
		ui.Info("No snapshots")
		return
	}

	ui.Header("%-40s %s", "NAME", "CREATED")
	for _, info := range snapshots {
		fmt.Printf("%-40s %s\n", info.Name, info.Created.Format("2006-01-02 15:04:05"))
	}
}

func runSnapshotsRestore(cmd *cobra.Command, args []string) {
	cfg := resolveConfig("", "", snapshotsOutput)
	name := args[0]

	err := lock.WithLock(cfg.Root, "restore", func() error {
		return snapshot.Restore(cfg.Root, cfg.OutputDir, name)
	})
	if err != nil {
		ui.Error("Restore failed: %v", err)
		os.Exit(1)
	}

	ui.Success("Restored %s to %s", name, cfg.OutputDir)
}
