package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/serhat-dirik/univchart/internal/render"
)

// capabilitiesDoc is the on-disk form of a platform capability
// enumeration, typically produced by cluster introspection.
type capabilitiesDoc struct {
	APIVersion  string   `yaml:"apiVersion"`
	Kind        string   `yaml:"kind"`
	APIVersions []string `yaml:"apiVersions"`
}

// LoadCapabilities reads a Capabilities document and builds the
// capability set for a render pass. Identifiers are taken verbatim; no
// parsing or normalization is applied.
func LoadCapabilities(path string) (render.CapabilitySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capabilities %s: %w", path, err)
	}

	var doc capabilitiesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse capabilities %s: %w", path, err)
	}

	if err := ValidateMeta(Meta{APIVersion: doc.APIVersion, Kind: doc.Kind}, KindCapabilities); err != nil {
		return nil, fmt.Errorf("capabilities %s: %w", path, err)
	}

	return render.NewCapabilitySet(doc.APIVersions...), nil
}

// LoadValues reads plain YAML mappings and folds them left to right:
// later files override earlier ones with the engine's merge semantics.
// No files yields an empty tree.
func LoadValues(paths ...string) (map[string]any, error) {
	merged := make(map[string]any)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values %s: %w", path, err)
		}

		var overlay map[string]any
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("parse values %s: %w", path, err)
		}

		merged = render.Merge(merged, overlay)
	}

	return merged, nil
}
