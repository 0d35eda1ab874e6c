package cmd

import (
	"github.com/serhat-dirik/univchart/internal/config"
)

// resolveConfig loads the project configuration, falling back to
// relative defaults when no project root is found, and applies any flag
// overrides.
func resolveConfig(catalogFlag, capabilitiesFlag, outputFlag string) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{
			Root:       ".",
			CatalogDir: "catalog",
			OutputDir:  "output",
		}
	}

	if catalogFlag != "" {
		cfg.CatalogDir = catalogFlag
	}
	if capabilitiesFlag != "" {
		cfg.CapabilitiesFile = capabilitiesFlag
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}

	return cfg
}
