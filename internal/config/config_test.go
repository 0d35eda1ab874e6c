package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRootFrom(t *testing.T) {
	t.Run("marker file at root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, MarkerFile), []byte{}, 0644))

		nested := filepath.Join(root, "catalog", "platform")
		require.NoError(t, os.MkdirAll(nested, 0755))

		got, err := findRootFrom(nested)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("catalog directory marks root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "catalog"), 0755))

		got, err := findRootFrom(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("no project found", func(t *testing.T) {
		dir := t.TempDir()
		_, err := findRootFrom(dir)
		assert.ErrorContains(t, err, "project root not found")
	})
}

func TestLoadFrom(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "catalog"), 0755))

	t.Run("optional files absent", func(t *testing.T) {
		cfg := loadFrom(root)
		assert.Equal(t, filepath.Join(root, "catalog"), cfg.CatalogDir)
		assert.Equal(t, filepath.Join(root, "output"), cfg.OutputDir)
		assert.Empty(t, cfg.ValuesFile)
		assert.Empty(t, cfg.CapabilitiesFile)
	})

	t.Run("optional files picked up", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "values.yaml"), []byte("replicas: 1\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "capabilities.yaml"), []byte("apiVersions: []\n"), 0644))

		cfg := loadFrom(root)
		assert.Equal(t, filepath.Join(root, "values.yaml"), cfg.ValuesFile)
		assert.Equal(t, filepath.Join(root, "capabilities.yaml"), cfg.CapabilitiesFile)
	})
}
