package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrymomot/pando/pkg/renderer"
)

// Option configures the website.
type Option func(*App)

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
	return func(a *App) {
		if fsys == nil {
			a.configErrs = append(a.configErrs, fmt.Errorf("%w: nil fs", ErrInvalidConfig))
			return
		}
		a.fsys = fsys
	}
}

// WithRoot serves the website from a directory on disk.
func WithRoot(dir string) Option {
	return func(a *App) {
		info, err := os.Stat(dir)
		if err != nil {
			a.configErrs = append(a.configErrs, fmt.Errorf("%w: www root: %w", ErrInvalidConfig, err))
			return
		}
		if !info.IsDir() {
			a.configErrs = append(a.configErrs, fmt.Errorf("%w: www root %s is not a directory", ErrInvalidConfig, dir))
			return
		}
		a.root = dir
		a.fsys = os.DirFS(dir)
	}
}

// WithRenderer registers a renderer factory under name, replacing any
// renderer with the same name.
func WithRenderer(name string, f renderer.Factory) Option {
	return func(a *App) {
		a.registry.Register(name, f)
	}
}

// WithDefaultRenderer sets the renderer for pages that name none and whose
// media type has no default renderer. Defaults to stdlib_format.
func WithDefaultRenderer(name string) Option {
	return func(a *App) {
		a.registry.SetDefault(name)
	}
}

// WithMediaTypeRenderer sets the default renderer for pages of mediaType.
//
// Example:
//
//	pando.WithMediaTypeRenderer("text/html", renderer.HTMLTemplate)
func WithMediaTypeRenderer(mediaType, name string) Option {
	return func(a *App) {
		a.registry.SetMediaTypeDefault(mediaType, name)
	}
}

// WithRendererOptions sets renderer specific options.
//
// Example:
//
//	pando.WithRendererOptions(renderer.Markdown, map[string]any{"sanitize": "ugc"})
func WithRendererOptions(name string, opts map[string]any) Option {
	return func(a *App) {
		a.registry.SetOptions(name, opts)
	}
}

// WithTemplateFuncs adds functions to the template based renderers.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(a *App) {
		if a.funcs == nil {
			a.funcs = make(map[string]any, len(funcs))
		}
		maps.Copy(a.funcs, funcs)
	}
}

// WithDefaultMediaType sets the media type of negotiated pages without a
// specline media type. Defaults to text/plain.
func WithDefaultMediaType(mediaType string) Option {
	return func(a *App) {
		if mediaType != "" {
			a.defaultMediaType = strings.ToLower(mediaType)
		}
	}
}

// WithHooks appends inbound hooks. They run in order before dispatch.
func WithHooks(hooks ...Hook) Option {
	return func(a *App) {
		for _, h := range hooks {
			if h.Func == nil {
				a.configErrs = append(a.configErrs, fmt.Errorf("%w: hook without func", ErrInvalidConfig))
				continue
			}
			a.hooks = append(a.hooks, h)
		}
	}
}

// WithOutboundHooks appends outbound hooks. They run in order on rendered
// responses.
func WithOutboundHooks(hooks ...OutboundHook) Option {
	return func(a *App) {
		for _, h := range hooks {
			if h.Func == nil {
				a.configErrs = append(a.configErrs, fmt.Errorf("%w: outbound hook without func", ErrInvalidConfig))
				continue
			}
			a.outbound = append(a.outbound, h)
		}
	}
}

// WithLogic registers Go logic for the simplate at path, relative to the www
// root with a leading slash (e.g. "/hello.spt"). It runs before the
// simplate's logic page.
func WithLogic(path string, fn LogicFunc) Option {
	return func(a *App) {
		if fn == nil {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		a.logic[path] = fn
	}
}

// WithMiddleware adds middleware around the website pipeline.
// Middleware is applied in the order provided; the first is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithErrorHandler sets the handler for unexpected errors.
// Defaults to DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithLogger sets the website logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithReload recompiles simplates whose content changed since they were
// compiled. Meant for development.
func WithReload(on bool) Option {
	return func(a *App) {
		a.reload = on
	}
}

// WithPrecompile compiles every simplate in New, so broken files fail startup.
func WithPrecompile(on bool) Option {
	return func(a *App) {
		a.precompile = on
	}
}

// WithMaxBodySize caps request bodies. Larger bodies get 413.
func WithMaxBodySize(n int64) Option {
	return func(a *App) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// WithCacheSize caps the number of compiled simplates kept in memory.
func WithCacheSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.cacheSize = n
		}
	}
}

// WithDevMode exposes error text in 500 responses from the default error handler.
func WithDevMode(on bool) Option {
	return func(a *App) {
		a.dev = on
	}
}

// WithHandler mounts a plain http.Handler at pattern. Mounted handlers take
// precedence over the www root.
//
// Example:
//
//	pando.WithHandler("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
//	    w.WriteHeader(http.StatusNoContent)
//	}))
func WithHandler(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern == "" || h == nil {
			a.configErrs = append(a.configErrs, fmt.Errorf("%w: mount needs a pattern and a handler", ErrInvalidConfig))
			return
		}
		a.mounts = append(a.mounts, mount{pattern: pattern, handler: h})
	}
}
