// Package catalog loads template catalogs, capability enumerations, and
// value overlays from YAML files and materializes them as render inputs.
// All file I/O for a render pass lives here; the engine itself never
// touches the filesystem.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/serhat-dirik/univchart/internal/render"
)

// API version and kind constants for univchart documents.
const (
	// APIVersionV1 is the current API version for univchart documents.
	APIVersionV1 = "univchart.io/v1"

	// KindCatalog identifies a Catalog document.
	KindCatalog = "Catalog"

	// KindCapabilities identifies a Capabilities document.
	KindCapabilities = "Capabilities"
)

// SupportedAPIVersions lists all API versions that can be loaded.
var SupportedAPIVersions = []string{APIVersionV1}

// Validation errors for document metadata.
var (
	// ErrUnsupportedAPIVersion indicates an unknown or unsupported API version.
	ErrUnsupportedAPIVersion = errors.New("unsupported API version")

	// ErrKindMismatch indicates the kind doesn't match what was expected.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrDuplicateUnit indicates two catalog units share a name.
	ErrDuplicateUnit = errors.New("duplicate unit name")
)

// Meta contains the common metadata fields of a univchart document.
type Meta struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// catalogDoc is the on-disk form of a catalog file.
type catalogDoc struct {
	APIVersion string        `yaml:"apiVersion"`
	Kind       string        `yaml:"kind"`
	Templates  []templateDoc `yaml:"templates"`
}

// templateDoc is the on-disk form of one template unit.
type templateDoc struct {
	Name  string         `yaml:"name"`
	Group string         `yaml:"group,omitempty"`
	Guard map[string]any `yaml:"guard,omitempty"`
	Body  string         `yaml:"body"`
}

// ValidateMeta checks a document's apiVersion and kind. Empty fields are
// tolerated so hand-written files stay forgiving; wrong values are not.
func ValidateMeta(meta Meta, expectedKind string) error {
	if meta.APIVersion != "" {
		supported := false
		for _, v := range SupportedAPIVersions {
			if meta.APIVersion == v {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedAPIVersion, meta.APIVersion, SupportedAPIVersions)
		}
	}

	if meta.Kind != "" && meta.Kind != expectedKind {
		return fmt.Errorf("%w: got %s, expected %s", ErrKindMismatch, meta.Kind, expectedKind)
	}

	return nil
}

// Load reads a template catalog from a file, or from every *.yml/*.yaml
// file in a directory in sorted filename order so catalog order is
// deterministic. Guards compile at load time and unit names must be
// unique across the whole load.
func Load(path string) ([]render.TemplateUnit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = listCatalogFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no catalog files in %s", path)
		}
	}

	var units []render.TemplateUnit
	seen := make(map[string]string) // name -> source file

	for _, file := range files {
		loaded, err := loadCatalogFile(file)
		if err != nil {
			return nil, err
		}
		for _, unit := range loaded {
			if prev, dup := seen[unit.Name]; dup {
				return nil, fmt.Errorf("%w: %q in %s (already defined in %s)", ErrDuplicateUnit, unit.Name, file, prev)
			}
			seen[unit.Name] = file
			units = append(units, unit)
		}
	}

	return units, nil
}

func listCatalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yml" || ext == ".yaml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

func loadCatalogFile(path string) ([]render.TemplateUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := ValidateMeta(Meta{APIVersion: doc.APIVersion, Kind: doc.Kind}, KindCatalog); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	units := make([]render.TemplateUnit, 0, len(doc.Templates))
	for i, tmpl := range doc.Templates {
		if tmpl.Name == "" {
			return nil, fmt.Errorf("catalog %s: template %d has no name", path, i)
		}

		guard, err := render.CompileGuard(guardValue(tmpl.Guard))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: template %q: %w", path, tmpl.Name, err)
		}

		units = append(units, render.TemplateUnit{
			Name:  tmpl.Name,
			Group: tmpl.Group,
			Guard: guard,
			Body:  tmpl.Body,
		})
	}

	return units, nil
}

// guardValue converts an absent guard mapping to the nil form
// CompileGuard treats as always-true.
func guardValue(raw map[string]any) any {
	if raw == nil {
		return nil
	}
	return raw
}
