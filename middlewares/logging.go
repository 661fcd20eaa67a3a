package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/pando/internal"
)

// Logging returns middleware that writes one log line per request.
// Short-circuit responses are logged like any other response; other errors
// are logged with status 500 and the error text.
func Logging(log *slog.Logger) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request) (*internal.Response, error) {
			start := time.Now()
			resp, err := next(req)

			status := http.StatusOK
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.Path()),
			}

			switch short, ok := internal.AsResponse(err); {
			case ok:
				status = short.StatusCode()
			case err != nil:
				status = http.StatusInternalServerError
				attrs = append(attrs, slog.String("error", err.Error()))
			case resp != nil:
				status = resp.StatusCode()
			}
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs = append(attrs,
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			)
			log.LogAttrs(req.Context(), level, "request", attrs...)

			return resp, err
		}
	}
}
