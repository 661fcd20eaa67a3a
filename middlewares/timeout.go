package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/logger"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutLogger sets the logger timeouts and recovered panics are
// reported to.
func WithTimeoutLogger(l *slog.Logger) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Timeout returns middleware that bounds the time spent in the pipeline.
// If it does not complete in time, a TimeoutError is returned for the
// ErrorHandler.
//
// The pipeline keeps running in its goroutine after the timeout; the request
// context is cancelled so Go logic and hooks can stop early. A panic in that
// goroutine is recovered there and returned as a PanicError.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
		Logger:  logger.Discard(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	type result struct {
		resp *internal.Response
		err  error
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request) (*internal.Response, error) {
			ctx, cancel := context.WithTimeout(req.Context(), cfg.Timeout)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						stack := make([]byte, DefaultStackSize)
						stack = stack[:runtime.Stack(stack, false)]
						cfg.Logger.ErrorContext(req.Context(), "panic recovered",
							slog.Any("panic", r),
							slog.String("path", req.Path()),
							slog.String("stack", string(stack)),
						)
						done <- result{err: &PanicError{Value: r, Stack: stack}}
					}
				}()

				resp, err := next(req.WithContext(ctx))
				done <- result{resp: resp, err: err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					cfg.Logger.WarnContext(req.Context(), "request timeout",
						slog.String("path", req.Path()),
						slog.Duration("timeout", cfg.Timeout),
					)
					return nil, &TimeoutError{Duration: cfg.Timeout}
				}
				return nil, ctx.Err()
			}
		}
	}
}
