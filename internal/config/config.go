// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultBackend   = "json"
	DefaultDataDir   = "."
	DefaultTheme     = "classic"
	DefaultFormat    = "text"
	DefaultClock     = "unix"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

var (
	ValidBackends = []string{"json", "sqlite", "memory"}
	ValidFormats  = []string{"text", "json", "yaml"}
	ValidThemes   = []string{"classic", "neon", "mono"}
	ValidClocks   = []string{"unix", "counter"}
)

// Config holds the full configuration for todo.
type Config struct {
	// Storage
	Backend string `toml:"backend"`  // json, sqlite or memory
	DataDir string `toml:"data_dir"` // where todolist.json / todolist.db live

	// Create the list on first use instead of failing with "document missing".
	AutoInit bool `toml:"auto_init"`

	// Heights: "unix" stamps wall seconds, "counter" continues from the
	// highest height already in the list (or ClockStart).
	Clock      string `toml:"clock"`
	ClockStart uint64 `toml:"clock_start"`

	// Output
	Theme  string `toml:"theme"`
	Format string `toml:"format"`
	Group  bool   `toml:"group"`

	Log LogConfig `toml:"log"`

	// Path of the file the config was read from (computed)
	File string `toml:"-"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Level     string `toml:"level"`  // debug, info, warn, error
	Format    string `toml:"format"` // text, json, logfmt
	Timestamp bool   `toml:"timestamp"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. Config file (TOML): path if set, else TODO_CONFIG, else todo.toml or .todo.toml in the working directory
// 3. Environment variables
//
// Flags are applied on top by the CLI.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.DataDir = DefaultDataDir
	cfg.AutoInit = true
	cfg.Clock = DefaultClock
	cfg.ClockStart = 0
	cfg.Theme = DefaultTheme
	cfg.Format = DefaultFormat
	cfg.Group = false
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
}

func findConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TODO_AUTO_INIT"); v != "" {
		cfg.AutoInit = boolFromString(v)
	}
	if v := os.Getenv("TODO_CLOCK"); v != "" {
		cfg.Clock = v
	}
	if v := os.Getenv("TODO_CLOCK_START"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TODO_CLOCK_START: %w", err)
		}
		cfg.ClockStart = n
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("TODO_GROUP"); v != "" {
		cfg.Group = boolFromString(v)
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	checks := []struct {
		name, value string
		valid       []string
	}{
		{"backend", c.Backend, ValidBackends},
		{"format", c.Format, ValidFormats},
		{"theme", c.Theme, ValidThemes},
		{"clock", c.Clock, ValidClocks},
	}
	for _, ch := range checks {
		if !contains(ch.valid, ch.value) {
			return fmt.Errorf("invalid %s %q: must be one of %v", ch.name, ch.value, ch.valid)
		}
	}
	return nil
}

// DataPath returns where the backend keeps its data: a directory for json,
// a database file for sqlite. Leading ~ is expanded.
func (c *Config) DataPath() string {
	dir := expandPath(c.DataDir)
	if c.Backend == "sqlite" {
		return filepath.Join(dir, "todolist.db")
	}
	return dir
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
