// Package config resolves file locations, reads the TOML config and builds
// the logger.
package config

import (
	"os"
	"path/filepath"
)

const appName = "preflop"

// baseDir returns $env when set, otherwise ~/<fallback...>. Without a home
// directory it returns ".".
func baseDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// appFile returns override when set, otherwise <base>/preflop/<name>.
func appFile(override, base, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(base, appName, name)
}

// DefaultDBPath returns the SQLite database path, honoring PREFLOP_DB.
func DefaultDBPath() string {
	return appFile(os.Getenv(EnvDB), baseDir("XDG_DATA_HOME", ".local", "share"), appName+".db")
}

// DefaultConfigPath returns the TOML config path, honoring PREFLOP_CONFIG.
func DefaultConfigPath() string {
	return appFile(os.Getenv(EnvConfig), baseDir("XDG_CONFIG_HOME", ".config"), "config.toml")
}
