// Command pando serves a simplate website from a directory or an S3 bucket.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/pando"
	"github.com/dmitrymomot/pando/middlewares"
	"github.com/dmitrymomot/pando/pkg/config"
	"github.com/dmitrymomot/pando/pkg/health"
	"github.com/dmitrymomot/pando/pkg/logger"
	"github.com/dmitrymomot/pando/pkg/s3fs"
)

// Config is read from the environment and an optional .env file.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	Root            string        `env:"WWW_ROOT" envDefault:"www"`
	DefaultRenderer string        `env:"DEFAULT_RENDERER"`
	MediaType       string        `env:"DEFAULT_MEDIA_TYPE" envDefault:"text/plain"`
	HealthPrefix    string        `env:"HEALTH_PREFIX" envDefault:"/_health"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodySize     int64         `env:"MAX_BODY_SIZE" envDefault:"10485760"`
	Reload          bool          `env:"RELOAD"`
	Precompile      bool          `env:"PRECOMPILE"`
	Dev             bool          `env:"DEV"`

	Log logger.Config
	S3  s3fs.Config
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
	if err := cfg.Log.Validate(); err != nil {
		log.Warn("invalid logger config, using defaults", slog.String("error", err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(cfg, log)
	if err != nil {
		log.Error("failed to create website", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Run(cfg.Addr,
		pando.Logger(log),
		pando.WithContext(ctx),
		pando.ShutdownTimeout(cfg.ShutdownTimeout),
	); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApp wires the website from cfg.
func newApp(cfg Config, log *slog.Logger) (*pando.App, error) {
	root, err := www(cfg)
	if err != nil {
		return nil, err
	}

	opts := []pando.Option{
		pando.WithFS(root),
		pando.WithLogger(log),
		pando.WithDefaultMediaType(cfg.MediaType),
		pando.WithMaxBodySize(cfg.MaxBodySize),
		pando.WithReload(cfg.Reload),
		pando.WithPrecompile(cfg.Precompile),
		pando.WithDevMode(cfg.Dev),
		pando.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(log),
			middlewares.Recover(middlewares.WithRecoverLogger(log)),
			middlewares.Timeout(cfg.RequestTimeout, middlewares.WithTimeoutLogger(log)),
		),
	}
	if cfg.DefaultRenderer != "" {
		opts = append(opts, pando.WithDefaultRenderer(cfg.DefaultRenderer))
	}
	if cfg.HealthPrefix != "" {
		opts = append(opts,
			pando.WithHandler(cfg.HealthPrefix+"/live", health.LivenessHandler()),
			pando.WithHandler(cfg.HealthPrefix+"/ready", health.ReadinessHandler(
				health.Checks{"www": health.RootCheck(root)},
				health.WithLogger(log),
			)),
		)
	}

	return pando.New(opts...)
}

// www returns the bucket when one is configured, the local root otherwise.
func www(cfg Config) (fs.FS, error) {
	if cfg.S3.Bucket != "" {
		return s3fs.New(cfg.S3)
	}
	if _, err := os.Stat(cfg.Root); err != nil {
		return nil, err
	}
	return os.DirFS(cfg.Root), nil
}
