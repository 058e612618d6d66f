package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path
	EnvConfigPath = "TRAITBASE_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "traitbase.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "traitbase"
)

// FindConfigPath searches for a config file in priority order:
// 1. $TRAITBASE_CONFIG (explicit path)
// 2. ./traitbase.yaml (working directory)
// 3. $XDG_CONFIG_HOME/traitbase/config.yaml
// 4. ~/.config/traitbase/config.yaml
//
// Returns empty string if no config file is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
