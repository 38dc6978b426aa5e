// Package settings holds the configuration of the rnconfig tool itself.
//
// Values come from three layers, later layers winning: built-in defaults,
// RNCONFIG_* environment variables, command-line flags.
package settings

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"rnconfig/internal/logger"
)

// Output formats for resolved configuration.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RNCONFIG_"

// Settings configures one CLI run.
type Settings struct {
	// Root is the project directory.
	Root string `env:"ROOT"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	// Output is the format resolved configuration is printed in.
	Output string `env:"OUTPUT"`

	// Timeout bounds a whole resolution run.
	Timeout time.Duration `env:"TIMEOUT"`

	// Concurrency caps dependency resolutions in flight.
	Concurrency int `env:"CONCURRENCY"`

	// BaselineDir holds saved baselines. Empty means inside the project root.
	BaselineDir string `env:"BASELINE_DIR"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Root:        ".",
		LogLevel:    "info",
		LogFormat:   logger.FormatConsole,
		Output:      OutputJSON,
		Timeout:     30 * time.Second,
		Concurrency: runtime.NumCPU(),
	}
}

func (s *Settings) validate() error {
	if !slices.Contains([]string{OutputJSON, OutputYAML}, s.Output) {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, s.Output)
	}
	if !slices.Contains([]string{logger.FormatConsole, logger.FormatJSON}, s.LogFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, s.LogFormat)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, s.Timeout)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, s.Concurrency)
	}
	return nil
}
