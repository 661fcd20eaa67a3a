package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/logger"
)

// requestIDKey is the context key for storing the request ID.
type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string // ID generator function
	ResponseHeader string        // Response header name
	Headers        []string      // Headers to check for existing ID (in order)
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header name.
// An empty name disables the header.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.ResponseHeader = header
	}
}

// RequestID returns middleware that assigns an ID to each request.
// An ID sent by the client in one of the configured headers is kept;
// otherwise a random UUID is generated. The ID is stored in the request
// context and echoed in the response header, short-circuit responses included.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	sources := make([]internal.ExtractorSource, 0, len(cfg.Headers))
	for _, h := range cfg.Headers {
		sources = append(sources, internal.FromHeader(h))
	}
	extractor := internal.NewExtractor(sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(req *internal.Request) (*internal.Response, error) {
			id, ok := extractor.Extract(req)
			if !ok {
				id = cfg.Generator()
			}

			req = req.WithContext(context.WithValue(req.Context(), requestIDKey{}, id))
			resp, err := next(req)

			if cfg.ResponseHeader != "" {
				if resp != nil {
					resp.WithHeader(cfg.ResponseHeader, id)
				}
				if short, ok := internal.AsResponse(err); ok {
					short.WithHeader(cfg.ResponseHeader, id)
				}
			}
			return resp, err
		}
	}
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor returns a logger.ContextExtractor that adds
// "request_id" to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
