package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, 5, cfg.Defaults.Impact)
	assert.Equal(t, 1.0, cfg.Defaults.Effort)
	assert.Equal(t, 7, cfg.Priority.DueHorizonDays)
	assert.Contains(t, cfg.Database.Path, DBFileName)

	// second load reads the file it just wrote
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, again.Database.Path)
}

func TestLoadExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `database:
  path: ` + filepath.Join(dir, "my.db") + `
priority:
  impact_weight: 8
  urgency_weight: 2
defaults:
  impact: 7
  urgency: 3
  effort: 0.5
  category: 2
tui:
  title_lines: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "my.db"), cfg.Database.Path)
	assert.Equal(t, 8.0, cfg.Priority.Impact)
	assert.Equal(t, 7, cfg.Defaults.Impact)
	assert.Equal(t, int64(2), cfg.Defaults.Category)
	assert.Equal(t, 3, cfg.TitleLines())
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `database:
  path: /tmp/other.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Defaults.Urgency)
	assert.Equal(t, 6.0, cfg.Priority.Impact)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"empty database path": func(c *Config) { c.Database.Path = "" },
		"impact too high":     func(c *Config) { c.Defaults.Impact = 11 },
		"impact too low":      func(c *Config) { c.Defaults.Impact = 0 },
		"urgency too high":    func(c *Config) { c.Defaults.Urgency = 99 },
		"zero effort":         func(c *Config) { c.Defaults.Effort = 0 },
		"bad category":        func(c *Config) { c.Defaults.Category = 0 },
		"negative weight":     func(c *Config) { c.Priority.Impact = -1 },
		"title lines too big": func(c *Config) { c.TUI.TitleLines = 4 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefault()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	assert.NoError(t, NewDefault().Validate())
}

func TestTitleLinesFallback(t *testing.T) {
	cfg := NewDefault()
	cfg.TUI.TitleLines = 0
	assert.Equal(t, DefaultTitleLines, cfg.TitleLines())

	cfg.TUI.TitleLines = 1
	assert.Equal(t, 1, cfg.TitleLines())
}
