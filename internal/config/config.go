// Package config loads interntrack's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all interntrack configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// GeneralConfig holds file locations.
type GeneralConfig struct {
	DBPath    string `toml:"db_path,omitempty"`
	ExportDir string `toml:"export_dir,omitempty"`
}

// DefaultsConfig seeds the setup form before a schedule exists.
type DefaultsConfig struct {
	RequiredHours   *float64 `toml:"required_hours,omitempty"`
	HoursPerDay     float64  `toml:"hours_per_day"`
	WorkDays        []int    `toml:"work_days"`
	ExcludeHolidays bool     `toml:"exclude_holidays"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			HoursPerDay: 8,
			WorkDays:    []int{1, 2, 3, 4, 5},
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "interntrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "interntrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	for _, d := range cfg.Defaults.WorkDays {
		if d < 0 || d > 6 {
			return cfg, fmt.Errorf("parsing config: work_days entry %d is not a weekday (0-6)", d)
		}
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(cfg, ConfigPath())
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Weekdays converts the configured default work days.
func (d DefaultsConfig) Weekdays() []time.Weekday {
	out := make([]time.Weekday, len(d.WorkDays))
	for i, n := range d.WorkDays {
		out[i] = time.Weekday(n)
	}
	return out
}

// ExportPath joins name onto the export directory, or returns name as-is
// when no directory is configured.
func (c Config) ExportPath(name string) string {
	if c.General.ExportDir == "" {
		return name
	}
	return filepath.Join(c.General.ExportDir, name)
}
