// Package config holds cmtui's runtime configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML config
// file (see paths.ConfigFilePath), then environment variables. Environment
// always wins, matching how the cm tool itself is configured:
//
//	CLAUDE_DIR              root directory of the session store
//	CM_COMMAND              external executable name (CLAUDE_MANAGER_BIN as fallback)
//	CLAUDE_MAX_SESSIONS     max concurrent metadata reads
//	CLAUDE_SESSION_TIMEOUT  per-command timeout in seconds (float)
//	CMTUI_DEBUG             enable debug logging ("1" or "true")
//
// Malformed numeric values are ignored in favor of the previous layer; a bad
// env var never prevents startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"cmtui/paths"
)

// Defaults for settings not provided by file or environment.
const (
	DefaultCommand        = "cm"
	DefaultMaxConcurrent  = 10
	DefaultTimeoutSeconds = 30.0
)

// Config is cmtui's runtime configuration. Fields are set once during Load
// and treated as read-only afterwards.
type Config struct {
	// ProjectsDir is the root of cm's session store. Each session's
	// directory is ProjectsDir/<encoded name>.
	ProjectsDir string `yaml:"projects_dir"`
	// Command is the external executable invoked for list/migrate.
	Command string `yaml:"command"`
	// MaxConcurrent caps in-flight metadata reads during a load cycle.
	MaxConcurrent int `yaml:"max_concurrent"`
	// TimeoutSeconds is the per-command timeout. Applies to each external
	// invocation independently; there is no overall workflow timeout.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		ProjectsDir:    filepath.Join(home, ".claude", "projects"),
		Command:        DefaultCommand,
		MaxConcurrent:  DefaultMaxConcurrent,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// config file if one exists, overlaid with environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnvironment builds a configuration from defaults and environment
// variables only, skipping the config file. Used by tests and one-shot
// invocations that must not depend on user files.
func FromEnvironment() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// applyFile overlays settings from a YAML file. A missing file is not an
// error; a present but unreadable or malformed file is.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Decode into a scratch value so absent keys keep their defaults.
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.ProjectsDir != "" {
		c.ProjectsDir = paths.ExpandUser(file.ProjectsDir)
	}
	if file.Command != "" {
		c.Command = file.Command
	}
	if file.MaxConcurrent > 0 {
		c.MaxConcurrent = file.MaxConcurrent
	}
	if file.TimeoutSeconds > 0 {
		c.TimeoutSeconds = file.TimeoutSeconds
	}
	if file.Debug {
		c.Debug = true
	}
	return nil
}

// applyEnv overlays settings from environment variables.
func (c *Config) applyEnv() {
	if dir := os.Getenv("CLAUDE_DIR"); dir != "" {
		c.ProjectsDir = paths.ExpandUser(dir)
	}
	if cmd := os.Getenv("CM_COMMAND"); cmd != "" {
		c.Command = cmd
	} else if cmd := os.Getenv("CLAUDE_MANAGER_BIN"); cmd != "" {
		c.Command = cmd
	}
	if raw := os.Getenv("CLAUDE_MAX_SESSIONS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.MaxConcurrent = n
		}
	}
	if raw := os.Getenv("CLAUDE_SESSION_TIMEOUT"); raw != "" {
		if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
	if raw := os.Getenv("CMTUI_DEBUG"); raw == "1" || raw == "true" {
		c.Debug = true
	}
}

// Validate checks invariants that would make the configuration unusable.
func (c *Config) Validate() error {
	if c.ProjectsDir == "" {
		return fmt.Errorf("projects directory must not be empty")
	}
	if c.Command == "" {
		return fmt.Errorf("command must not be empty")
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be positive, got %d", c.MaxConcurrent)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %v", c.TimeoutSeconds)
	}
	return nil
}

// CommandTimeout returns the per-invocation timeout as a duration.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// SessionPath returns the on-disk directory for a session name.
func (c *Config) SessionPath(name string) string {
	return filepath.Join(c.ProjectsDir, name)
}
