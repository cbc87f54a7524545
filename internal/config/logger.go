package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is used when neither flag nor environment picks a level.
const DefaultLogLevel = "warn"

// NewLogger builds the stderr logger shared by every command. An empty level
// falls back to PREFLOP_LOG_LEVEL and then DefaultLogLevel.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          appName,
	}), nil
}
