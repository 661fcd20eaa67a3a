package negotiate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/pkg/negotiate"
)

func TestParseAccept(t *testing.T) {
	t.Parallel()

	t.Run("orders by quality and keeps header order on ties", func(t *testing.T) {
		t.Parallel()

		ranges := negotiate.ParseAccept("text/plain;q=0.5, text/html, application/json, */*;q=0.1")
		got := make([]string, 0, len(ranges))
		for _, r := range ranges {
			got = append(got, r.String())
		}

		require.Equal(t, []string{"text/html", "application/json", "text/plain", "*/*"}, got)
	})

	t.Run("skips malformed entries", func(t *testing.T) {
		t.Parallel()

		ranges := negotiate.ParseAccept("html, */json, text/html;q=abc")
		require.Len(t, ranges, 1)
		require.Equal(t, "text/html", ranges[0].String())
		require.InDelta(t, 1.0, ranges[0].Quality, 0.0001)
	})

	t.Run("caps header length", func(t *testing.T) {
		t.Parallel()

		header := strings.Repeat("text/html,", 1000)
		ranges := negotiate.ParseAccept(header)
		require.Less(t, len(ranges), 1000)
	})
}

func TestBest(t *testing.T) {
	t.Parallel()

	available := []string{"text/html", "application/json", "text/plain"}

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "empty header picks first", header: "", want: "text/html", ok: true},
		{name: "full wildcard picks first", header: "*/*", want: "text/html", ok: true},
		{name: "exact match", header: "application/json", want: "application/json", ok: true},
		{name: "higher quality wins", header: "text/html;q=0.4, application/json;q=0.8", want: "application/json", ok: true},
		{name: "subtype wildcard", header: "text/*", want: "text/html", ok: true},
		{name: "exact beats wildcard at same quality", header: "text/*, text/plain", want: "text/plain", ok: true},
		{name: "specific zero quality excludes type", header: "text/*, text/html;q=0", want: "text/plain", ok: true},
		{name: "case insensitive", header: "Application/JSON", want: "application/json", ok: true},
		{name: "parameters ignored", header: "text/plain; charset=utf-8", want: "text/plain", ok: true},
		{name: "no match", header: "image/png", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := negotiate.Best(tt.header, available)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("no available types", func(t *testing.T) {
		t.Parallel()

		_, ok := negotiate.Best("*/*", nil)
		require.False(t, ok)
	})
}
