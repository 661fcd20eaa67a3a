package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// New creates a logger writing to w. Invalid level or format values fall
// back to info and JSON; call Config.Validate to reject them up front.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var out slog.Handler
	if strings.EqualFold(cfg.Format, FormatText) {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	if cfg.SentryDSN == "" {
		return slog.New(newContextHandler(out, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(newContextHandler(out, extractors...))
	}

	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newContextHandler(newFanout(out, toSentry), extractors...))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
