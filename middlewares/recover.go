package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/logger"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables capturing the stack trace.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger sets the logger panics are reported to.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Recover returns middleware that recovers from panics in hooks, logic and
// renderers. It logs the panic and returns a PanicError for the ErrorHandler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Logger:    logger.Discard(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request) (resp *internal.Response, err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var stack []byte
				attrs := []any{slog.Any("panic", r), slog.String("path", req.Path())}
				if !cfg.DisablePrintStack && cfg.StackSize > 0 {
					stack = make([]byte, cfg.StackSize)
					stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				cfg.Logger.ErrorContext(req.Context(), "panic recovered", attrs...)

				resp, err = nil, &PanicError{Value: r, Stack: stack}
			}()

			return next(req)
		}
	}
}
