package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidConfig is returned for an unknown level or format.
var ErrInvalidConfig = errors.New("logger: invalid config")

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config configures a logger.
type Config struct {
	Level             string `env:"LOG_LEVEL" envDefault:"info"`
	Format            string `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", FormatJSON, FormatText:
		return nil
	}
	return fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
}

// ParseLevel parses debug, info, warn or error. An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: level %q", ErrInvalidConfig, s)
}
