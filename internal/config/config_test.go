package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/informatter/text-tetris-engine/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Rows == nil || *cfg.Rows != 10 {
		t.Errorf("Expected Rows 10, got %v", cfg.Rows)
	}
	if cfg.Columns == nil || *cfg.Columns != 10 {
		t.Errorf("Expected Columns 10, got %v", cfg.Columns)
	}
	if cfg.Verbose == nil || *cfg.Verbose {
		t.Errorf("Expected Verbose false, got %v", cfg.Verbose)
	}
	assert.Equal(t, engine.DefaultOptions(), cfg.Options())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "solver.json", `{"rows": 20, "verbose": true}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.GetRows())
	assert.Nil(t, cfg.Columns)
	assert.Equal(t, 10, cfg.GetColumns(), "omitted fields use the default")
	assert.True(t, cfg.GetVerbose())
}

func TestLoadErrors(t *testing.T) {
	t.Run("extension", func(t *testing.T) {
		path := writeConfig(t, "solver.yaml", `rows: 4`)
		_, err := Load(path)
		assert.ErrorContains(t, err, ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("too large", func(t *testing.T) {
		path := writeConfig(t, "big.json", `{"rows": 4}`+strings.Repeat(" ", 1024*1024))
		_, err := Load(path)
		assert.ErrorContains(t, err, "too large")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"rows": }`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config JSON")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, "zero.json", `{"columns": 0}`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "columns must be positive")
	})
}

func TestMerge(t *testing.T) {
	cfg := Defaults()
	cfg.Merge(&Config{Columns: ptrInt(6)})
	cfg.Merge(nil)

	assert.Equal(t, engine.Options{Rows: 10, Columns: 6}, cfg.Options())

	override := &Config{Rows: ptrInt(3)}
	cfg.Merge(override)
	*override.Rows = 99
	assert.Equal(t, 3, cfg.GetRows(), "merge copies values")
}
