// Package config holds the zettel configuration: where the notes live, where
// the link index is stored, and which external search command backs the
// search command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all zettel configuration.
type Config struct {
	// NotesDir is the directory scanned for markdown notes.
	NotesDir string `yaml:"notes_dir"`

	// DatabasePath is the sqlite file holding the node/link index.
	DatabasePath string `yaml:"database_path"`

	// DefaultNote is used as the current note when a graph command is run
	// without an argument.
	DefaultNote string `yaml:"default_note"`

	// FuzzyMode installs the fuzzy picker as the prompt provider at startup.
	// toggle-mode flips and persists it.
	FuzzyMode bool `yaml:"fuzzy_mode"`

	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig configures the external text search command.
type SearchConfig struct {
	// Command is the binary to run for text search.
	Command string `yaml:"command"`
	// Args are passed before the query.
	Args []string `yaml:"args"`
	// Timeout is a duration string; zero value means 30s.
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: stderr
}

// DefaultConfig returns the default configuration. The search default is a
// ripgrep live-grep; users may point Command at any grep-compatible tool.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		NotesDir:     filepath.Join(home, "notes"),
		DatabasePath: filepath.Join(home, ".local", "share", "zettel", "zettel.db"),
		FuzzyMode:    false,
		Search: SearchConfig{
			Command: "rg",
			Args:    []string{"--line-number", "--no-heading", "--color", "never"},
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "zettel.yaml"
	}
	return filepath.Join(dir, "zettel", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ZETTEL_NOTES_DIR"); dir != "" {
		c.NotesDir = dir
	}
	if path := os.Getenv("ZETTEL_DB"); path != "" {
		c.DatabasePath = path
	}
	if note := os.Getenv("ZETTEL_NOTE"); note != "" {
		c.DefaultNote = note
	}
	if cmd := os.Getenv("ZETTEL_SEARCH_CMD"); cmd != "" {
		c.Search.Command = cmd
		c.Search.Args = nil
	}
}
