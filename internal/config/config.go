// Package config handles application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/taskdeck/taskdeck/internal/priority"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"

	// DBFileName is the name of the SQLite database file within the data directory.
	DBFileName = "tasks.db"

	// LogFileName is the name of the log file within the data directory.
	LogFileName = "taskdeck.log"
)

// ErrInvalid is wrapped by all validation failures.
var ErrInvalid = errors.New("invalid config")

// Config is the application configuration, stored as YAML in the user's
// config directory and created with defaults on first run.
type Config struct {
	Database DatabaseConfig   `yaml:"database"`
	Priority priority.Weights `yaml:"priority"`
	Defaults DefaultsConfig   `yaml:"defaults"`
	TUI      TUIConfig        `yaml:"tui,omitempty"`

	// path is the absolute path this config was loaded from (not serialized).
	path string `yaml:"-"`
}

// DatabaseConfig locates the durable store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig holds default attribute values for new tasks.
type DefaultsConfig struct {
	Impact   int     `yaml:"impact"`
	Urgency  int     `yaml:"urgency"`
	Effort   float64 `yaml:"effort"`
	Category int64   `yaml:"category"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	TitleLines int `yaml:"title_lines,omitempty"`
}

// DefaultTitleLines is the default number of title lines on TUI cards.
const DefaultTitleLines = 2

// DefaultConfigPath returns the path to ~/.config/taskdeck/config.yml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(home, ".config", "taskdeck", ConfigFileName)
}

// DefaultDataDir returns the path to ~/.local/share/taskdeck, where the
// database and log file live.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "taskdeck")
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(DefaultDataDir(), DBFileName)},
		Priority: priority.DefaultWeights(),
		Defaults: DefaultsConfig{
			Impact:   5,
			Urgency:  5,
			Effort:   1.0,
			Category: 1,
		},
		TUI: TUIConfig{TitleLines: DefaultTitleLines},
	}
}

// Path returns the absolute path the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// TitleLines returns the configured number of title lines for TUI cards,
// falling back to the default when unset.
func (c *Config) TitleLines() int {
	if c.TUI.TitleLines == 0 {
		return DefaultTitleLines
	}
	return c.TUI.TitleLines
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalid)
	}
	if c.Defaults.Impact < 1 || c.Defaults.Impact > 10 {
		return fmt.Errorf("%w: defaults.impact must be between 1 and 10", ErrInvalid)
	}
	if c.Defaults.Urgency < 1 || c.Defaults.Urgency > 10 {
		return fmt.Errorf("%w: defaults.urgency must be between 1 and 10", ErrInvalid)
	}
	if c.Defaults.Effort <= 0 {
		return fmt.Errorf("%w: defaults.effort must be positive", ErrInvalid)
	}
	if c.Defaults.Category < 1 {
		return fmt.Errorf("%w: defaults.category must be >= 1", ErrInvalid)
	}
	if c.Priority.Impact < 0 || c.Priority.Urgency < 0 {
		return fmt.Errorf("%w: priority weights must be >= 0", ErrInvalid)
	}
	const minTitleLines, maxTitleLines = 1, 3
	if c.TUI.TitleLines != 0 && (c.TUI.TitleLines < minTitleLines || c.TUI.TitleLines > maxTitleLines) {
		return fmt.Errorf("%w: tui.title_lines must be between %d and %d",
			ErrInvalid, minTitleLines, maxTitleLines)
	}
	return nil
}

// Save writes the config to its file, creating parent directories.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Load reads and validates the config at path. A missing file is created
// with defaults so first run needs no setup step.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // config path from trusted source
	if os.IsNotExist(err) {
		cfg := NewDefault()
		cfg.path = absPath
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
