package internal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/internal"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	req := internal.NewTestRequest(http.MethodGet, "/?token=q", nil)
	req.Header.Set("X-Request-ID", "hdr")
	req.Header.Set("Authorization", "bearer tok")
	req.Cookies["sid"] = "c"

	t.Run("empty sources returns false", func(t *testing.T) {
		t.Parallel()

		_, ok := internal.NewExtractor().Extract(req)
		require.False(t, ok)
	})

	t.Run("first non-empty source wins", func(t *testing.T) {
		t.Parallel()

		ex := internal.NewExtractor(
			internal.FromHeader("X-Missing"),
			internal.FromQuery("token"),
			internal.FromHeader("X-Request-ID"),
		)
		v, ok := ex.Extract(req)
		require.True(t, ok)
		require.Equal(t, "q", v)
	})

	t.Run("sources", func(t *testing.T) {
		t.Parallel()

		v, ok := internal.FromCookie("sid")(req)
		require.True(t, ok)
		require.Equal(t, "c", v)

		v, ok = internal.FromBearerToken()(req)
		require.True(t, ok)
		require.Equal(t, "tok", v)

		_, ok = internal.FromCookie("none")(req)
		require.False(t, ok)

		other := internal.NewTestRequest(http.MethodGet, "/", nil)
		other.Header.Set("Authorization", "Basic abc")
		_, ok = internal.FromBearerToken()(other)
		require.False(t, ok)
	})
}

func TestOutboundHook_Run(t *testing.T) {
	t.Parallel()

	req := internal.NewTestRequest(http.MethodGet, "/", nil)
	resp := internal.NewResponse(http.StatusOK, "x")

	var gotReq *internal.Request
	h := internal.NewOutboundHook(func(r *internal.Request, in *internal.Response) (*internal.Response, error) {
		gotReq = r
		return nil, nil
	})

	out, err := h.Run(map[string]any{"request": req, "response": resp, "context": nil})
	require.NoError(t, err)
	require.Nil(t, out)
	require.Same(t, req, gotReq)
	require.Equal(t, []string{"request", "response"}, h.Params.Names())
}
