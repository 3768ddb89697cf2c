// Package config loads the TOML configuration file and applies
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for the config directory
	AppName = "tt"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// DB is the path to the SQLite database file
	DB string `toml:"db"`
	// Rounding selects the reporting rounding mode: "entry" or "overall"
	Rounding string `toml:"rounding"`
	// List holds task listing options
	List ListConfig `toml:"list"`
	// Pomodoro holds pomodoro session defaults
	Pomodoro PomodoroConfig `toml:"pomodoro"`
}

// ListConfig holds listing defaults
type ListConfig struct {
	// Compact hides the logged-time column in task listings
	Compact bool `toml:"compact"`
	// Limit caps the number of listed tasks (0 = unlimited)
	Limit int `toml:"limit"`
}

// PomodoroConfig holds pomodoro session defaults
type PomodoroConfig struct {
	Length     string `toml:"length"`
	ShortBreak string `toml:"short_break"`
	LongBreak  string `toml:"long_break"`
	Cycles     int    `toml:"cycles"`
	LongEvery  int    `toml:"long_every"`
}

// DefaultConfig returns a Config with defaults matching the CLI's behavior.
func DefaultConfig() Config {
	return Config{
		Rounding: "entry",
		Pomodoro: PomodoroConfig{
			Length:     "25m",
			ShortBreak: "5m",
			LongBreak:  "15m",
			Cycles:     4,
			LongEvery:  4,
		},
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// LoadOrDefault loads the config file at path, returning defaults when the
// file does not exist. Environment overrides (TT_DB, TT_ROUNDING) are
// applied last. The result is normalized.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if v := os.Getenv("TT_DB"); v != "" {
		cfg.DB = strings.TrimSpace(v)
	}
	if v := os.Getenv("TT_ROUNDING"); v != "" {
		cfg.Rounding = v
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize lowercases and sanitizes fields, falling back to defaults for
// unrecognized values.
func (c *Config) Normalize() {
	c.Rounding = strings.ToLower(strings.TrimSpace(c.Rounding))
	if c.Rounding != "entry" && c.Rounding != "overall" {
		c.Rounding = "entry"
	}
	if c.List.Limit < 0 {
		c.List.Limit = 0
	}
	d := DefaultConfig().Pomodoro
	if c.Pomodoro.Length == "" {
		c.Pomodoro.Length = d.Length
	}
	if c.Pomodoro.ShortBreak == "" {
		c.Pomodoro.ShortBreak = d.ShortBreak
	}
	if c.Pomodoro.LongBreak == "" {
		c.Pomodoro.LongBreak = d.LongBreak
	}
	if c.Pomodoro.Cycles <= 0 {
		c.Pomodoro.Cycles = d.Cycles
	}
	if c.Pomodoro.LongEvery <= 0 {
		c.Pomodoro.LongEvery = d.LongEvery
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Rounding != "entry" && c.Rounding != "overall" {
		return fmt.Errorf("invalid rounding %q: must be \"entry\" or \"overall\"", c.Rounding)
	}
	return nil
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# tt configuration file

# Database file path (default: <user config dir>/tt/tt.sqlite3)
# db = "/home/me/tt.sqlite3"

# Rounding mode for reports: "entry" (round each entry, then sum)
# or "overall" (sum seconds, round once per group)
rounding = "entry"

[list]
# Hide the logged-time column in task listings
compact = false
# Cap the number of listed tasks (0 = unlimited)
limit = 0

[pomodoro]
length = "25m"
short_break = "5m"
long_break = "15m"
cycles = 4
long_every = 4
`
}
