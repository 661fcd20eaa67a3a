package pando

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/pando/internal"
)

// Website options

// WithFS serves the website from fsys.
//
// Example:
//
//	//go:embed www
//	var www embed.FS
//
//	sub, _ := fs.Sub(www, "www")
//	pando.New(pando.WithFS(sub))
func WithFS(fsys fs.FS) Option {
	return internal.WithFS(fsys)
}

// WithRoot serves the website from a directory on disk.
func WithRoot(dir string) Option {
	return internal.WithRoot(dir)
}

// WithRenderer registers a renderer factory under name.
func WithRenderer(name string, f RendererFactory) Option {
	return internal.WithRenderer(name, f)
}

// WithDefaultRenderer sets the renderer for pages without one in their specline.
func WithDefaultRenderer(name string) Option {
	return internal.WithDefaultRenderer(name)
}

// WithMediaTypeRenderer sets the default renderer for one media type.
func WithMediaTypeRenderer(mediaType, name string) Option {
	return internal.WithMediaTypeRenderer(mediaType, name)
}

// WithRendererOptions passes options to the named renderer factory.
func WithRendererOptions(name string, opts map[string]any) Option {
	return internal.WithRendererOptions(name, opts)
}

// WithTemplateFuncs adds functions to the template renderers.
func WithTemplateFuncs(funcs map[string]any) Option {
	return internal.WithTemplateFuncs(funcs)
}

// WithDefaultMediaType sets the media type of pages without a specline.
func WithDefaultMediaType(mediaType string) Option {
	return internal.WithDefaultMediaType(mediaType)
}

// WithHooks adds inbound hooks, run in order before resources are resolved.
func WithHooks(hooks ...Hook) Option {
	return internal.WithHooks(hooks...)
}

// WithOutboundHooks adds hooks run in order after a resource is rendered.
func WithOutboundHooks(hooks ...OutboundHook) Option {
	return internal.WithOutboundHooks(hooks...)
}

// WithLogic attaches Go logic to the simplate at path, e.g. "/hello.spt".
func WithLogic(path string, fn LogicFunc) Option {
	return internal.WithLogic(path, fn)
}

// WithMiddleware adds middleware around the pipeline.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithErrorHandler sets the handler for unexpected pipeline errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithLogger sets the website logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithReload recompiles simplates when their content changes.
func WithReload(on bool) Option {
	return internal.WithReload(on)
}

// WithPrecompile compiles every simplate in New.
func WithPrecompile(on bool) Option {
	return internal.WithPrecompile(on)
}

// WithMaxBodySize limits request bodies.
func WithMaxBodySize(n int64) Option {
	return internal.WithMaxBodySize(n)
}

// WithCacheSize bounds the number of compiled resources kept in memory.
func WithCacheSize(n int) Option {
	return internal.WithCacheSize(n)
}

// WithDevMode shows error details in responses.
func WithDevMode(on bool) Option {
	return internal.WithDevMode(on)
}

// WithHandler mounts a plain http.Handler at pattern.
func WithHandler(pattern string, h http.Handler) Option {
	return internal.WithHandler(pattern, h)
}

// Run options

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run once the server is listening.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a function run during graceful shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
