// Package config loads tool configuration from .outlinify.yaml, falling back
// to defaults when no file is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file looked up by Load.
const FileName = ".outlinify.yaml"

// Config holds all tool configuration.
type Config struct {
	Index IndexConfig `yaml:"index"`
	LSP   LSPConfig   `yaml:"lsp"`
}

// IndexConfig controls workspace indexing.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	DBPath   string   `yaml:"db_path"`
}

// LSPConfig controls the language-server mode.
type LSPConfig struct {
	// LogFile receives protocol traces; empty disables them.
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			Includes: []string{"**/*.hack", "**/*.hh", "**/*.php"},
			Excludes: []string{"**/vendor/**", "**/.git/**", "**/node_modules/**"},
			DBPath:   ".outlinify/index.db",
		},
	}
}

// Load reads the configuration file under workspace, merging it over the
// defaults. A missing file is not an error.
func Load(workspace string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(workspace, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if len(c.Index.Includes) == 0 {
		c.Index.Includes = def.Index.Includes
	}
	if c.Index.DBPath == "" {
		c.Index.DBPath = def.Index.DBPath
	}
}

// Save writes the configuration file under workspace.
func (c *Config) Save(workspace string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workspace, FileName), data, 0o644)
}
