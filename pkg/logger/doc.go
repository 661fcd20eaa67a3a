// Package logger builds the slog loggers used by pando.
//
// A logger is configured from a Config (level, output format and an optional
// Sentry DSN). Request scoped values such as the request ID are attached to
// every record through context extractors:
//
//	log := logger.New(cfg, os.Stdout, requestIDExtractor)
//	log.InfoContext(ctx, "resource compiled", slog.String("path", p))
//
// Attributes stored in a context with WithAttrs are added to every record
// logged with that context.
//
// When a Sentry DSN is set, warnings and errors are also sent to Sentry;
// errors create issues. Without a DSN, or if Sentry fails to initialize,
// output goes to the writer only.
package logger
