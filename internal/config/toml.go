package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Ranges   RangesConfig   `toml:"ranges"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Hero         *string `toml:"hero"`
	Villain      *string `toml:"villain"`
	GameType     *string `toml:"game-type"`
	HandStart    *string `toml:"hand-start"`
	Hands        *string `toml:"hands"`
	OnlyPlayable *bool   `toml:"only-playable"`
	MaxHands     *int    `toml:"max-hands"`
	HistoryWidth *int    `toml:"history-width"`
	DealDelayMs  *int    `toml:"deal-delay-ms"`
	Coach        *bool   `toml:"coach"`
}

// RangesConfig maps range chart settings.
type RangesConfig struct {
	Defaults *string `toml:"defaults"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultsPath returns the external default ranges file, preferring the
// environment over the config file. Empty means the embedded charts.
func (c FileConfig) DefaultsPath() string {
	if v := os.Getenv(EnvDefaultRanges); v != "" {
		return v
	}
	if c.Ranges.Defaults != nil {
		return *c.Ranges.Defaults
	}
	return ""
}
