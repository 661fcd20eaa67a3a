package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/pkg/logger"
	"github.com/dmitrymomot/pando/pkg/s3fs"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.spt"), []byte("Hello from {path}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "boom.spt"), []byte("abort(418)\n\f\nnever"), 0o600))

	return Config{
		Root:           root,
		MediaType:      "text/plain",
		HealthPrefix:   "/_health",
		RequestTimeout: time.Second,
		MaxBodySize:    1 << 10,
	}
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	app, err := newApp(testConfig(t), logger.Discard())
	require.NoError(t, err)

	t.Run("serves the root", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello from /", w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("short-circuit responses", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("health probes", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/_health/live", "/_health/ready"} {
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Equal(t, "OK", w.Body.String(), path)
		}
	})
}

func TestNewApp_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.Root = filepath.Join(cfg.Root, "missing")
		_, err := newApp(cfg, logger.Discard())
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("incomplete bucket config", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.S3 = s3fs.Config{Bucket: "site"}
		_, err := newApp(cfg, logger.Discard())
		require.ErrorIs(t, err, s3fs.ErrInvalidConfig)
	})

	t.Run("precompile reports unknown renderer", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig(t)
		cfg.DefaultRenderer = "nope"
		cfg.Precompile = true
		_, err := newApp(cfg, logger.Discard())
		require.Error(t, err)
	})
}
