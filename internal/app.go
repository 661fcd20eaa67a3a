package internal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pando/pkg/cache"
	"github.com/dmitrymomot/pando/pkg/logger"
	"github.com/dmitrymomot/pando/pkg/renderer"
	"github.com/dmitrymomot/pando/pkg/simplate"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Defaults for the website.
const (
	DefaultMediaType = "text/plain"
	defaultCacheSize = 1024
)

// App is a website serving simplates and static files from a www root.
// It is immutable after New returns and safe for concurrent use.
type App struct {
	router           chi.Router
	fsys             fs.FS
	registry         *renderer.Registry
	resources        *cache.Memory[*resource]
	logger           *slog.Logger
	errorHandler     ErrorHandler
	logic            map[string]LogicFunc
	funcs            map[string]any
	root             string
	defaultMediaType string
	hooks            []Hook
	outbound         []OutboundHook
	middlewares      []Middleware
	mounts           []mount
	configErrs       []error
	maxBodySize      int64
	cacheSize        int
	reload           bool
	precompile       bool
	dev              bool
}

// mount is a plain http.Handler mounted next to the website.
type mount struct {
	handler http.Handler
	pattern string
}

// New creates a website with the given options.
// Renderer factory failures and, with WithPrecompile, simplate compile
// failures are returned here rather than on the first request.
//
// Example:
//
//	app, err := pando.New(
//	    pando.WithRoot("www"),
//	    pando.WithLogic("/hello.spt", func(c *pando.Context) error {
//	        return c.Set("name", "program")
//	    }),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		router:           chi.NewRouter(),
		registry:         renderer.NewRegistry(),
		logger:           logger.Discard(),
		logic:            make(map[string]LogicFunc),
		defaultMediaType: DefaultMediaType,
		maxBodySize:      DefaultMaxBodySize,
		cacheSize:        defaultCacheSize,
	}

	for _, opt := range opts {
		opt(a)
	}
	if len(a.configErrs) > 0 {
		return nil, errors.Join(a.configErrs...)
	}

	if a.fsys == nil {
		if a.root == "" {
			a.root = "."
		}
		a.fsys = os.DirFS(a.root)
	}
	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler(a.logger, a.dev)
	}

	if err := a.registry.Configure(renderer.Config{
		Root:   a.root,
		Funcs:  a.funcs,
		Logger: a.logger,
	}); err != nil {
		return nil, err
	}

	a.resources = cache.NewMemory[*resource](cache.WithMaxEntries(a.cacheSize))

	if a.precompile {
		if err := a.Precompile(context.Background()); err != nil {
			return nil, err
		}
	}

	a.setupRoutes()
	return a, nil
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// Logger returns the website logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// FS returns the www root.
func (a *App) FS() fs.FS {
	return a.fsys
}

// Renderers returns the renderer registry.
func (a *App) Renderers() *renderer.Registry {
	return a.registry
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Handle runs req through the middleware and the website pipeline without a
// transport. Short-circuit responses are returned as the response; other
// errors are returned as is.
func (a *App) Handle(req *Request) (*Response, error) {
	return Catch(chain(a.handle, a.middlewares))(req)
}

// Close releases the compiled-resource cache.
func (a *App) Close() error {
	return a.resources.Close()
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", pando.Logger(log), pando.ShutdownHook(closeDB))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   append(cfg.shutdownHooks, func(context.Context) error { return a.Close() }),
		baseCtx:         cfg.baseCtx,
	})
}

// Precompile compiles every simplate under the www root.
func (a *App) Precompile(ctx context.Context) error {
	var count int
	err := fs.WalkDir(a.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || path.Ext(p) != simplate.Extension {
			return nil
		}
		if _, err := a.load(ctx, p); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("pando: precompile: %w", err)
	}

	a.logger.DebugContext(ctx, "simplates precompiled", slog.Int("count", count))
	return nil
}

// setupRoutes mounts plain handlers and routes everything else to the website.
func (a *App) setupRoutes() {
	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	h := serveHandler(chain(a.handle, a.middlewares), a.errorHandler, a.maxBodySize, a.logger)
	a.router.Handle("/*", h)
}

// handle is the website pipeline: inbound hooks, dispatch, context, logic,
// negotiation, rendering and outbound hooks.
func (a *App) handle(req *Request) (*Response, error) {
	req, err := runHooks(a.hooks, req, a)
	if err != nil {
		return nil, err
	}

	t, err := dispatch(a.fsys, req.Path())
	if err != nil {
		return nil, err
	}

	var (
		resp *Response
		c    *Context
	)
	if t.static {
		resp, err = staticResponse(a.fsys, t.file)
	} else {
		var res *resource
		res, err = a.load(req.Context(), t.file)
		if err != nil {
			return nil, err
		}
		c = NewContext(req)
		resp, err = res.respond(c, t.mediaType, a.logic["/"+t.file])
	}
	if err != nil {
		return nil, err
	}

	return runOutboundHooks(a.outbound, req, c, resp, a)
}

// load returns the compiled resource for file, compiling it at most once per
// path. With reload on, the key includes the content hash so edited files
// are recompiled.
func (a *App) load(ctx context.Context, file string) (*resource, error) {
	var raw []byte
	key := file
	if a.reload {
		b, err := fs.ReadFile(a.fsys, file)
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256(b)
		raw, key = b, file+"@"+hex.EncodeToString(sum[:8])
	}

	return a.resources.GetOrSet(ctx, key, func(ctx context.Context) (*resource, error) {
		if raw == nil {
			b, err := fs.ReadFile(a.fsys, file)
			if err != nil {
				return nil, err
			}
			raw = b
		}

		res, err := compileResource("/"+file, raw, a.registry, a.defaultMediaType)
		if err != nil {
			return nil, err
		}

		a.logger.DebugContext(ctx, "simplate compiled",
			slog.String("path", res.path),
			slog.Int("pages", len(res.pages)),
			slog.Bool("negotiated", res.negotiated),
		)
		return res, nil
	})
}
