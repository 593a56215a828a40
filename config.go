package logplus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all logger construction settings. The zero value is not
// usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// Level is the minimum severity that is emitted: one of
	// debug, info, warning, error.
	Level string `mapstructure:"level"    validate:"required,oneof=debug info warning error"`

	// Sink selects the console stream.
	Sink string `mapstructure:"sink"     validate:"required,oneof=stdout stderr"`

	// UTC renders timestamps in UTC instead of local time.
	UTC bool `mapstructure:"utc"`

	// File configures an optional rotating file sink. When File.Path is set,
	// lines are written to both the console stream and the file.
	File FileConfig `mapstructure:"file"`

	// Writer, when non-nil, replaces the configured sinks entirely. Useful
	// for tests and for embedding into a host application's output pipeline.
	Writer io.Writer `mapstructure:"-"`
}

// FileConfig contains the file sink settings.
type FileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns the process-wide defaults: every level enabled,
// local timestamps, lines to stdout, no file sink.
func DefaultConfig() Config {
	return Config{
		Level: "debug",
		Sink:  "stdout",
		File: FileConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks the configuration and reports the first violation found.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			return fmt.Errorf(
				"invalid logger config: field %s failed %q validation",
				ve.Namespace(), ve.Tag(),
			)
		}
		return fmt.Errorf("invalid logger config: %w", err)
	}
	return nil
}

// slogLevel maps the textual level to its slog equivalent. Validate has
// already rejected anything outside the four known levels.
func (c Config) slogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// LoadConfig loads configuration from the environment and an optional
// logplus.yaml in the working directory. Environment variables use the
// LOGPLUS_ prefix with underscores for nesting (LOGPLUS_LEVEL,
// LOGPLUS_FILE_PATH, ...) and take precedence over file values.
// The result is validated before it is returned.
func LoadConfig() (Config, error) {
	v := viper.New()

	// Defaults must be registered for AutomaticEnv to surface the keys
	// during Unmarshal.
	defaults := DefaultConfig()
	v.SetDefault("level", defaults.Level)
	v.SetDefault("sink", defaults.Sink)
	v.SetDefault("utc", defaults.UTC)
	v.SetDefault("file.path", defaults.File.Path)
	v.SetDefault("file.max_size_mb", defaults.File.MaxSizeMB)
	v.SetDefault("file.max_backups", defaults.File.MaxBackups)
	v.SetDefault("file.max_age_days", defaults.File.MaxAgeDays)
	v.SetDefault("file.compress", defaults.File.Compress)

	v.SetConfigName("logplus")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LOGPLUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read logger config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse logger config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Option mutates a Config during factory construction.
type Option func(*Config)

// WithLevel sets the minimum emitted severity.
func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithSink selects the console stream, "stdout" or "stderr".
func WithSink(sink string) Option {
	return func(c *Config) { c.Sink = sink }
}

// WithUTC switches timestamps to UTC.
func WithUTC(utc bool) Option {
	return func(c *Config) { c.UTC = utc }
}

// WithFile enables the rotating file sink at path.
func WithFile(path string) Option {
	return func(c *Config) { c.File.Path = path }
}

// WithWriter redirects all output to w, bypassing sink selection.
func WithWriter(w io.Writer) Option {
	return func(c *Config) { c.Writer = w }
}
