package middlewares_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/middlewares"
	"github.com/dmitrymomot/pando/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when not present", func(t *testing.T) {
		t.Parallel()

		var seen string
		handler := middlewares.RequestID()(func(req *internal.Request) (*internal.Response, error) {
			seen = middlewares.GetRequestID(req.Context())
			return internal.NewResponse(http.StatusOK), nil
		})

		resp, err := handler(newRequest("/"))
		require.NoError(t, err)

		id := resp.Header.Get("X-Request-ID")
		require.Equal(t, seen, id)
		_, err = uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("keeps the id sent by the client", func(t *testing.T) {
		t.Parallel()

		req := newRequest("/")
		req.Header.Set("X-Correlation-ID", "upstream-1")

		resp, err := middlewares.RequestID()(okHandler(""))(req)
		require.NoError(t, err)
		require.Equal(t, "upstream-1", resp.Header.Get("X-Request-ID"))
	})

	t.Run("header order decides", func(t *testing.T) {
		t.Parallel()

		req := newRequest("/")
		req.Header.Set("X-Request-ID", "first")
		req.Header.Set("X-Correlation-ID", "second")

		resp, err := middlewares.RequestID()(okHandler(""))(req)
		require.NoError(t, err)
		require.Equal(t, "first", resp.Header.Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Trace"),
		)

		resp, err := mw(okHandler(""))(newRequest("/"))
		require.NoError(t, err)
		require.Equal(t, "fixed", resp.Header.Get("X-Trace"))
		require.Empty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("short-circuit responses carry the id", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "abc" }))
		_, err := mw(func(*internal.Request) (*internal.Response, error) {
			return nil, internal.NewResponse(http.StatusForbidden)
		})(newRequest("/"))

		short, ok := internal.AsResponse(err)
		require.True(t, ok)
		require.Equal(t, "abc", short.Header.Get("X-Request-ID"))
	})

	t.Run("extractor adds request_id to logs", func(t *testing.T) {
		t.Parallel()

		var buf syncBuffer
		log := logger.New(logger.Config{}, &buf, middlewares.RequestIDExtractor())

		mw := middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "log-id" }))
		_, err := mw(func(req *internal.Request) (*internal.Response, error) {
			log.InfoContext(req.Context(), "inside")
			return nil, nil
		})(newRequest("/"))
		require.NoError(t, err)

		log.InfoContext(context.Background(), "outside")

		recs := buf.records(t)
		require.Len(t, recs, 2)
		require.Equal(t, "log-id", recs[0]["request_id"])
		require.NotContains(t, recs[1], "request_id")
	})
}
