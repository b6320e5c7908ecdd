// Package config loads groupx settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvLibrary  = "GROUPX_LIBRARY"
	EnvLogLevel = "GROUPX_LOG_LEVEL"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds all groupx configuration.
type Config struct {
	Library     LibraryConfig     `yaml:"library"`
	Layout      LayoutConfig      `yaml:"layout"`
	Interaction InteractionConfig `yaml:"interaction"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LibraryConfig selects the reference groups used for isomorphism lookups.
type LibraryConfig struct {
	// Builtin loads the standard families.
	Builtin bool `yaml:"builtin"`
	// Dirs lists directories of definition files loaded after the builtins.
	Dirs []string `yaml:"dirs"`
	// Workers bounds concurrent group construction; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// LayoutConfig sets the lattice cell geometry.
type LayoutConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Left       float64 `yaml:"left"`
	Top        float64 `yaml:"top"`
}

// InteractionConfig tunes touch handling.
type InteractionConfig struct {
	LongPress string `yaml:"long_press"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{Builtin: true},
		Layout: LayoutConfig{
			CellWidth:  120,
			CellHeight: 180,
			Left:       50,
			Top:        100,
		},
		Interaction: InteractionConfig{LongPress: "500ms"},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from path. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides appends GROUPX_LIBRARY directories (path-list
// separated) and replaces the log level with GROUPX_LOG_LEVEL.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLibrary); v != "" {
		for _, dir := range filepath.SplitList(v) {
			if dir != "" {
				c.Library.Dirs = append(c.Library.Dirs, dir)
			}
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate checks ranges and parses durations and levels.
func (c *Config) Validate() error {
	if c.Library.Workers < 0 {
		return fmt.Errorf("%w: library.workers must be >= 0", ErrInvalid)
	}
	if c.Layout.CellWidth < 0 || c.Layout.CellHeight < 0 {
		return fmt.Errorf("%w: layout cell sizes must be >= 0", ErrInvalid)
	}
	if c.Layout.CellWidth > c.Layout.CellHeight && c.Layout.CellHeight > 0 {
		return fmt.Errorf("%w: layout.cell_width must not exceed layout.cell_height", ErrInvalid)
	}
	if _, err := c.LongPressDelay(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if !c.Library.Builtin && len(c.Library.Dirs) == 0 {
		return fmt.Errorf("%w: library has neither builtin groups nor directories", ErrInvalid)
	}
	return nil
}

// LongPressDelay parses interaction.long_press.
func (c *Config) LongPressDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interaction.LongPress)
	if err != nil {
		return 0, fmt.Errorf("%w: interaction.long_press: %v", ErrInvalid, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: interaction.long_press must be positive", ErrInvalid)
	}
	return d, nil
}

// Level parses logging.level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
	}
	return lvl, nil
}

// Logger builds a zap logger from the logging section. verbose forces the
// debug level.
func (c *Config) Logger(verbose bool) (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	if !c.Logging.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
