package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/internal"
)

type ctxKey struct{}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	t.Run("reads method, url, headers, cookies and body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/form?x=1", strings.NewReader("a=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(&http.Cookie{Name: "Foo", Value: "bar"})
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, "v"))

		req, err := internal.NewRequest(r, 0)
		require.NoError(t, err)
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/form", req.Path())
		require.Equal(t, "/form?x=1", req.URI())
		require.Equal(t, "1", req.Query().Get("x"))
		require.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		require.Equal(t, []byte("a=b"), req.Body)
		require.Equal(t, "v", req.Context().Value(ctxKey{}))
		require.Same(t, r, req.HTTPRequest())

		v, ok := req.Cookie("Foo")
		require.True(t, ok)
		require.Equal(t, "bar", v)
	})

	t.Run("body limit", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		_, err := internal.NewRequest(r, 9)
		require.ErrorIs(t, err, internal.ErrBodyTooLarge)

		r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		req, err := internal.NewRequest(r, 10)
		require.NoError(t, err)
		require.Len(t, req.Body, 10)
	})

	t.Run("headers are copied", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Foo", "bar")
		req, err := internal.NewRequest(r, 0)
		require.NoError(t, err)

		req.Header.Set("Foo", "changed")
		require.Equal(t, "bar", r.Header.Get("Foo"))
	})
}

func TestRequest_CloneAndContext(t *testing.T) {
	t.Parallel()

	req := internal.NewTestRequest(http.MethodGet, "/a?b=c", []byte("x"))
	req.Header.Set("Foo", "bar")
	req.Cookies["k"] = "v"

	clone := req.Clone()
	clone.Header.Set("Foo", "baz")
	clone.Cookies["k"] = "w"
	clone.URL.Path = "/other"
	clone.Body[0] = 'y'

	require.Equal(t, "bar", req.Header.Get("Foo"))
	require.Equal(t, "v", req.Cookies["k"])
	require.Equal(t, "/a", req.Path())
	require.Equal(t, []byte("x"), req.Body)

	ctx := context.WithValue(context.Background(), ctxKey{}, 1)
	withCtx := req.WithContext(ctx)
	require.Equal(t, 1, withCtx.Context().Value(ctxKey{}))
	require.Nil(t, req.Context().Value(ctxKey{}))
}
