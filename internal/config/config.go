package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/informatter/text-tetris-engine/engine"
)

// Config holds the solver settings read from a JSON file. Fields omitted
// from the file fall back to the defaults of engine.DefaultOptions.
type Config struct {
	Rows    *int  `json:"rows,omitempty"`
	Columns *int  `json:"columns,omitempty"`
	Verbose *bool `json:"verbose,omitempty"`
}

func ptrInt(v int) *int    { return &v }
func ptrBool(v bool) *bool { return &v }

// Defaults returns a Config with every field set to its default value.
func Defaults() *Config {
	d := engine.DefaultOptions()
	return &Config{
		Rows:    ptrInt(d.Rows),
		Columns: ptrInt(d.Columns),
		Verbose: ptrBool(d.Verbose),
	}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension and be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if c.Rows != nil && *c.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", *c.Rows)
	}
	if c.Columns != nil && *c.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", *c.Columns)
	}
	return nil
}

// Merge overlays the fields set in other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Rows != nil {
		c.Rows = ptrInt(*other.Rows)
	}
	if other.Columns != nil {
		c.Columns = ptrInt(*other.Columns)
	}
	if other.Verbose != nil {
		c.Verbose = ptrBool(*other.Verbose)
	}
}

func (c *Config) GetRows() int {
	if c.Rows == nil {
		return engine.DefaultOptions().Rows
	}
	return *c.Rows
}

func (c *Config) GetColumns() int {
	if c.Columns == nil {
		return engine.DefaultOptions().Columns
	}
	return *c.Columns
}

func (c *Config) GetVerbose() bool {
	if c.Verbose == nil {
		return false
	}
	return *c.Verbose
}

// Options converts the config to solver options.
func (c *Config) Options() engine.Options {
	return engine.Options{
		Rows:    c.GetRows(),
		Columns: c.GetColumns(),
		Verbose: c.GetVerbose(),
	}
}
