// Package config handles project discovery and default paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// MarkerFile identifies a univchart project root.
const MarkerFile = "univchart.yaml"

// Config holds the resolved paths for a univchart project.
type Config struct {
	// Root is the project root directory.
	Root string

	// CatalogDir is the directory holding catalog files.
	CatalogDir string

	// ValuesFile is the default values file, if present.
	ValuesFile string

	// CapabilitiesFile is the default capabilities file, if present.
	CapabilitiesFile string

	// OutputDir is where rendered documents are written.
	OutputDir string
}

// FindRoot searches upward from the current directory for the project
// root, identified by a univchart.yaml marker or a catalog/ directory.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return findRootFrom(dir)
}

func findRootFrom(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
			return dir, nil
		}

		if info, err := os.Stat(filepath.Join(dir, "catalog")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no %s or catalog/ directory)", MarkerFile)
}

// Load finds the project root and resolves the default paths. Optional
// inputs (values, capabilities) are left empty when the files do not
// exist; callers may override any path via flags.
func Load() (*Config, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return loadFrom(root), nil
}

func loadFrom(root string) *Config {
	cfg := &Config{
		Root:       root,
		CatalogDir: filepath.Join(root, "catalog"),
		OutputDir:  filepath.Join(root, "output"),
	}

	if path := filepath.Join(root, "values.yaml"); fileExists(path) {
		cfg.ValuesFile = path
	}
	if path := filepath.Join(root, "capabilities.yaml"); fileExists(path) {
		cfg.CapabilitiesFile = path
	}

	return cfg
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
