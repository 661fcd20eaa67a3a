package middlewares_test

import (
	"errors"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/middlewares"
	"github.com/dmitrymomot/pando/pkg/logger"
)

func fstestFS() fstest.MapFS {
	return fstest.MapFS{
		"index.spt": {Data: []byte("home")},
		"deny.spt":  {Data: []byte("abort(403)\n\f\nnever")},
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs regular responses", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		_, err := middlewares.Logging(logger.New(logger.Config{}, &buf))(okHandler("x"))(newRequest("/a"))
		require.NoError(t, err)

		recs := buf.records(t)
		require.Len(t, recs, 1)
		require.Equal(t, "request", recs[0]["msg"])
		require.Equal(t, "INFO", recs[0]["level"])
		require.Equal(t, "GET", recs[0]["method"])
		require.Equal(t, "/a", recs[0]["path"])
		require.InDelta(t, 200, recs[0]["status"], 0)
		require.Contains(t, recs[0], "duration")
	})

	t.Run("short-circuit responses are not errors", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		_, err := middlewares.Logging(logger.New(logger.Config{}, &buf))(func(*internal.Request) (*internal.Response, error) {
			return nil, internal.NewResponse(http.StatusNotFound)
		})(newRequest("/missing"))
		require.Error(t, err)

		recs := buf.records(t)
		require.Equal(t, "INFO", recs[0]["level"])
		require.InDelta(t, 404, recs[0]["status"], 0)
		require.NotContains(t, recs[0], "error")
	})

	t.Run("errors log at error level", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		_, err := middlewares.Logging(logger.New(logger.Config{}, &buf))(func(*internal.Request) (*internal.Response, error) {
			return nil, errors.New("boom")
		})(newRequest("/"))
		require.Error(t, err)

		recs := buf.records(t)
		require.Equal(t, "ERROR", recs[0]["level"])
		require.InDelta(t, 500, recs[0]["status"], 0)
		require.Equal(t, "boom", recs[0]["error"])
	})

	t.Run("stack on a website", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		log := logger.New(logger.Config{}, &buf, middlewares.RequestIDExtractor())
		app, err := internal.New(
			internal.WithFS(fstestFS()),
			internal.WithLogger(log),
			internal.WithMiddleware(
				middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "rid" })),
				middlewares.Logging(log),
				middlewares.Recover(middlewares.WithRecoverLogger(log)),
			),
		)
		require.NoError(t, err)

		resp, err := app.Handle(newRequest("/deny"))
		require.NoError(t, err)
		require.Equal(t, http.StatusForbidden, resp.Code)
		require.Equal(t, "rid", resp.Header.Get("X-Request-ID"))

		recs := buf.records(t)
		require.Len(t, recs, 1)
		require.Equal(t, "rid", recs[0]["request_id"])
		require.InDelta(t, 403, recs[0]["status"], 0)
	})
}
