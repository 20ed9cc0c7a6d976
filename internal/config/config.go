// Package config loads spanfilter settings from an optional config file and
// SPANFILTER_* environment variables, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"

	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/span"
)

// EnvPrefix prefixes every environment variable, e.g. SPANFILTER_LOG_LEVEL.
const EnvPrefix = "SPANFILTER"

// Log formats.
const (
	LogFormatText  = "text"
	LogFormatJSON  = "json"
	LogFormatColor = "color"
)

// Config holds settings shared by every command. Flags override it.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is text, json or color.
	LogFormat string `mapstructure:"log_format"`

	// Database is the default SQLite database path for import and query.
	Database string `mapstructure:"database"`

	// BasePath prefixes every generated filter path.
	BasePath string `mapstructure:"base_path"`

	// Casing names the path segment convention (see naming.Lookup).
	Casing string `mapstructure:"casing"`

	// ReservedKey names the span declaration member.
	ReservedKey string `mapstructure:"reserved_key"`

	// Normalize lists leaf paths whose string values are lower cased.
	Normalize []string `mapstructure:"normalize"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   LogFormatText,
		Casing:      "camel",
		ReservedKey: span.DefaultKey,
	}
}

// Load reads configuration. Later sources win: defaults, then the config
// file at path (skipped when path is empty), then environment variables.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("database", def.Database)
	v.SetDefault("base_path", def.BasePath)
	v.SetDefault("casing", def.Casing)
	v.SetDefault("reserved_key", def.ReservedKey)
	v.SetDefault("normalize", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON, LogFormatColor:
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q: must be text, json or color", c.LogFormat))
	}
	if _, ok := naming.Lookup(c.Casing); !ok {
		errs = append(errs, fmt.Errorf("invalid casing %q", c.Casing))
	}
	if c.ReservedKey == "" {
		errs = append(errs, errors.New("reserved_key must not be empty"))
	}
	return errors.Join(errs...)
}

// ParseLevel parses a slog level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger builds a logger writing to w in the configured format. verbose
// forces debug level.
func NewLogger(c Config, w io.Writer, verbose bool) (*slog.Logger, error) {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch c.LogFormat {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case LogFormatColor:
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: "15:04:05.000"})
	case LogFormatText, "":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return slog.New(handler), nil
}
