package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvConfig        = "PREFLOP_CONFIG"
	EnvDB            = "PREFLOP_DB"
	EnvDefaultRanges = "PREFLOP_DEFAULT_RANGES"
	EnvLogLevel      = "PREFLOP_LOG_LEVEL"
)

// LoadEnv reads KEY=VALUE pairs from path into the environment. Variables
// already set win. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
