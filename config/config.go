// SPDX-License-Identifier: MIT

// Package config loads solver tuning and logging settings from YAML with
// LVFRAME_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvframe/regression"
	"github.com/katalvlaran/lvframe/svd"
)

// Environment variables consulted by Load and Parse.
const (
	EnvThreshold = "LVFRAME_SINGULAR_VALUE_THRESHOLD"
	EnvLogLevel  = "LVFRAME_LOG_LEVEL"
	EnvLogFormat = "LVFRAME_LOG_FORMAT"
)

// Logging formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`
}

type SolverConfig struct {
	// SingularValueThreshold overrides the adaptive default when > 0.
	SingularValueThreshold float64 `yaml:"singular_value_threshold"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse is Load for an in-memory document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvThreshold, v, ErrInvalidConfig)
		}
		cfg.Solver.SingularValueThreshold = f
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}

	return nil
}

// Validate checks value ranges. A zero threshold selects the adaptive default.
func (c *Config) Validate() error {
	t := c.Solver.SingularValueThreshold
	if t != 0 {
		if err := svd.ValidateThreshold(t); err != nil {
			return fmt.Errorf("solver.singular_value_threshold: %w: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalidConfig)
	}

	return nil
}

// SlogLevel maps Level ("debug", "info", "warn", "error") onto slog.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("logging.level %q: %w", l.Level, ErrInvalidConfig)
	}

	return lvl, nil
}

// SolverOptions turns the configuration into regression options. logger and
// metrics may be nil.
func (c *Config) SolverOptions(logger *slog.Logger, metrics *regression.Metrics) []regression.Option {
	var opts []regression.Option
	if logger != nil {
		opts = append(opts, regression.WithLogger(logger))
	}
	if metrics != nil {
		opts = append(opts, regression.WithMetrics(metrics))
	}
	if c.Solver.SingularValueThreshold > 0 {
		opts = append(opts, regression.WithSingularValueThreshold(c.Solver.SingularValueThreshold))
	}

	return opts
}
