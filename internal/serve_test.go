package internal_test

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/logger"
)

func TestCatch(t *testing.T) {
	t.Parallel()

	t.Run("raised response becomes the response", func(t *testing.T) {
		t.Parallel()

		h := internal.Catch(func(*internal.Request) (*internal.Response, error) {
			return nil, internal.NewResponse(http.StatusOK, "Greetings, program!")
		})

		resp, err := h(internal.NewTestRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, "200 OK", resp.StatusLine())
		require.Equal(t, "Greetings, program!", string(resp.Body))
		require.Empty(t, resp.Header)
	})

	t.Run("wrapped response is caught", func(t *testing.T) {
		t.Parallel()

		h := internal.Catch(func(*internal.Request) (*internal.Response, error) {
			return nil, fmt.Errorf("deep: %w", internal.NewResponse(http.StatusGone))
		})

		resp, err := h(internal.NewTestRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusGone, resp.Code)
	})

	t.Run("other errors propagate unchanged", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		h := internal.Catch(func(*internal.Request) (*internal.Response, error) {
			return nil, boom
		})

		resp, err := h(internal.NewTestRequest(http.MethodGet, "/", nil))
		require.Nil(t, resp)
		require.Same(t, boom, err)
	})

	t.Run("regular responses pass through", func(t *testing.T) {
		t.Parallel()

		want := internal.NewResponse(http.StatusAccepted)
		h := internal.Catch(func(*internal.Request) (*internal.Response, error) {
			return want, nil
		})

		resp, err := h(internal.NewTestRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Same(t, want, resp)
	})
}

func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("writes raised response", func(t *testing.T) {
		t.Parallel()

		h := internal.Serve(func(*internal.Request) (*internal.Response, error) {
			return nil, internal.NewResponse(http.StatusOK, "Greetings, program!")
		}, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Greetings, program!", w.Body.String())
	})

	t.Run("other errors reach the error handler", func(t *testing.T) {
		t.Parallel()

		var got error
		h := internal.Serve(func(*internal.Request) (*internal.Response, error) {
			return nil, errors.New("boom")
		}, func(_ *internal.Request, err error) *internal.Response {
			got = err
			return internal.NewResponse(http.StatusBadGateway, "custom")
		})

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.EqualError(t, got, "boom")
		require.Equal(t, http.StatusBadGateway, w.Code)
		require.Equal(t, "custom", w.Body.String())
	})

	t.Run("default error handler hides details", func(t *testing.T) {
		t.Parallel()

		h := internal.Serve(func(*internal.Request) (*internal.Response, error) {
			return nil, errors.New("secret")
		}, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Internal Server Error", w.Body.String())
	})

	t.Run("nil response is 204", func(t *testing.T) {
		t.Parallel()

		h := internal.Serve(func(*internal.Request) (*internal.Response, error) {
			return nil, nil
		}, nil)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("oversized body is 413", func(t *testing.T) {
		t.Parallel()

		h := internal.Serve(func(*internal.Request) (*internal.Response, error) {
			t.Error("handler must not run")
			return nil, nil
		}, nil)

		w := httptest.NewRecorder()
		body := strings.NewReader(strings.Repeat("x", int(internal.DefaultMaxBodySize)+1))
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", body))
		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	req := internal.NewTestRequest(http.MethodGet, "/broken", nil)

	t.Run("logs and hides the error", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		log := logger.New(logger.Config{}, &buf)

		resp := internal.DefaultErrorHandler(log, false)(req, errors.New("db down"))
		require.Equal(t, http.StatusInternalServerError, resp.Code)
		require.Equal(t, "Internal Server Error", string(resp.Body))
		require.Contains(t, buf.String(), "db down")
		require.Contains(t, buf.String(), "/broken")
	})

	t.Run("dev mode shows the error", func(t *testing.T) {
		t.Parallel()

		resp := internal.DefaultErrorHandler(nil, true)(req, errors.New("db down"))
		require.Equal(t, "db down", string(resp.Body))
	})

	t.Run("responses are not logged", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		log := slog.New(slog.NewTextHandler(&buf, nil))

		resp := internal.DefaultErrorHandler(log, false)(req, internal.NewResponse(http.StatusNotFound))
		require.Equal(t, http.StatusNotFound, resp.Code)
		require.Empty(t, buf.String())
	})
}

type gatewayError struct{}

func (gatewayError) Error() string   { return "upstream down" }
func (gatewayError) StatusCode() int { return http.StatusBadGateway }

func TestDefaultErrorHandler_StatusCoder(t *testing.T) {
	t.Parallel()

	req := internal.NewTestRequest(http.MethodGet, "/", nil)
	resp := internal.DefaultErrorHandler(nil, false)(req, fmt.Errorf("fetch: %w", gatewayError{}))
	require.Equal(t, http.StatusBadGateway, resp.Code)
	require.Equal(t, "Bad Gateway", string(resp.Body))
}
