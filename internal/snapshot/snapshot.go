// Package snapshot manages point-in-time copies of rendered output so a
// bad render can be rolled back without re-running the pipeline.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/serhat-dirik/univchart/internal/fileutil"
)

const (
	// Prefix is the prefix for snapshot directory names.
	Prefix = "snapshot-"

	// DateFormat includes nanoseconds to prevent same-second collisions.
	DateFormat = "20060102-150405.000000000"

	// MaxSnapshots is the number of snapshots to retain.
	MaxSnapshots = 20
)

// Info holds metadata about one snapshot.
type Info struct {
	Name    string
	Path    string
	Created time.Time
}

func snapshotsDir(root string) string {
	return filepath.Join(root, ".univchart", "snapshots")
}

// Create copies outputDir into a new timestamped snapshot under the
// project root. Returns the snapshot name, or an empty string when
// there was nothing to snapshot.
func Create(root, outputDir string) (string, error) {
	if !dirHasContent(outputDir) {
		return "", nil
	}

	snapDir := snapshotsDir(root)
	if err := os.MkdirAll(snapDir, 0755); err != nil {
		return "", fmt.Errorf("create snapshots directory: %w", err)
	}

	name := Prefix + time.Now().Format(DateFormat)
	path := filepath.Join(snapDir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	if err := fileutil.CopyDir(outputDir, path); err != nil {
		if cleanupErr := os.RemoveAll(path); cleanupErr != nil {
			return "", fmt.Errorf("copy output to snapshot: %w (cleanup also failed: %v)", err, cleanupErr)
		}
		return "", fmt.Errorf("copy output to snapshot: %w", err)
	}

	if err := Cleanup(root); err != nil {
		// Retention failures should not fail the render.
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old snapshots: %v\n", err)
	}

	return name, nil
}

// List returns available snapshots sorted newest first.
func List(root string) ([]Info, error) {
	entries, err := os.ReadDir(snapshotsDir(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots directory: %w", err)
	}

	var snapshots []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}

		created, err := time.Parse(DateFormat, strings.TrimPrefix(entry.Name(), Prefix))
		if err != nil {
			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}
			created = info.ModTime()
		}

		snapshots = append(snapshots, Info{
			Name:    entry.Name(),
			Path:    filepath.Join(snapshotsDir(root), entry.Name()),
			Created: created,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Created.After(snapshots[j].Created)
	})

	return snapshots, nil
}

// Restore replaces outputDir with the named snapshot's contents. The
// snapshot is copied into a uuid-suffixed temp directory first and
// swapped in by rename, so a failed restore never leaves the output
// half-written.
func Restore(root, outputDir, name string) error {
	snapshotPath := filepath.Join(snapshotsDir(root), name)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	restoreID := uuid.New().String()[:8]
	tempDir := outputDir + ".restore-temp-" + restoreID
	oldDir := outputDir + ".restore-old-" + restoreID

	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("create temp restore directory: %w", err)
	}
	if err := fileutil.CopyDir(snapshotPath, tempDir); err != nil {
		os.RemoveAll(tempDir)
		return fmt.Errorf("copy snapshot to temp: %w", err)
	}

	_, statErr := os.Stat(outputDir)
	outputExists := statErr == nil

	if outputExists {
		if err := os.Rename(outputDir, oldDir); err != nil {
			os.RemoveAll(tempDir)
			return fmt.Errorf("move old output aside: %w", err)
		}
	}

	if err := os.Rename(tempDir, outputDir); err != nil {
		// Try to put the old output back before giving up.
		if outputExists {
			if restoreErr := os.Rename(oldDir, outputDir); restoreErr != nil {
				return fmt.Errorf("swap in restored output: %w (old output left at %s)", err, oldDir)
			}
		}
		os.RemoveAll(tempDir)
		return fmt.Errorf("swap in restored output: %w", err)
	}

	if outputExists {
		os.RemoveAll(oldDir)
	}

	return nil
}

// Cleanup removes snapshots beyond the retention limit, oldest first.
func Cleanup(root string) error {
	snapshots, err := List(root)
	if err != nil {
		return err
	}

	if len(snapshots) <= MaxSnapshots {
		return nil
	}

	for _, old := range snapshots[MaxSnapshots:] {
		if err := os.RemoveAll(old.Path); err != nil {
			return fmt.Errorf("remove snapshot %s: %w", old.Name, err)
		}
	}

	return nil
}

// dirHasContent reports whether dir exists and contains at least one
// entry.
func dirHasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
