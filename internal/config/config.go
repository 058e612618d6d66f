// Package config provides configuration management for Traitbase.
//
// Config file locations (priority order):
//  1. $TRAITBASE_CONFIG
//  2. ./traitbase.yaml
//  3. $XDG_CONFIG_HOME/traitbase/config.yaml
//  4. ~/.config/traitbase/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"traitbase/internal/collector"
)

// Config holds the user-facing settings for a collection run.
type Config struct {
	Version int `yaml:"version"`
	// CacheDir is where per-dataset results are memoized.
	CacheDir string `yaml:"cache_dir"`
	// Delay is the politeness pause between network fetches, as a
	// duration string ("5s", "1m").
	Delay string `yaml:"delay"`
	// Providers restricts runs to a subset of dataset identifiers.
	// Empty means every registered provider.
	Providers []string `yaml:"providers,omitempty"`
	// Database is the default path for SQLite exports.
	Database string `yaml:"database"`
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if _, err := cfg.DelayDuration(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		CacheDir: "./traitbase-cache",
		Delay:    collector.DefaultDelay.String(),
		Database: "./traitbase.db",
	}
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.CacheDir == "" {
		c.CacheDir = "./traitbase-cache"
	}
	if c.Delay == "" {
		c.Delay = collector.DefaultDelay.String()
	}
	if c.Database == "" {
		c.Database = "./traitbase.db"
	}
}

// DelayDuration parses the configured politeness delay.
func (c *Config) DelayDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", c.Delay, err)
	}
	return d, nil
}
