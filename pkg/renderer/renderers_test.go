package renderer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pando/pkg/renderer"
)

func compile(t *testing.T, reg *renderer.Registry, name, raw string) renderer.RenderFunc {
	t.Helper()
	fn, err := reg.Compile(name, "test.spt", []byte(raw))
	require.NoError(t, err)
	return fn
}

func render(t *testing.T, fn renderer.RenderFunc, data map[string]any) string {
	t.Helper()
	out, err := renderer.Render(fn, data)
	require.NoError(t, err)
	return string(out)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	reg := renderer.NewRegistry()

	t.Run("substitutes names and paths", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.Format, "Hi {name}, cookie {request.cookie.Foo}, first {items.0}")
		out := render(t, fn, map[string]any{
			"name":    "program",
			"request": map[string]any{"cookie": map[string]string{"Foo": "bar"}},
			"items":   []string{"a", "b"},
		})
		require.Equal(t, "Hi program, cookie bar, first a", out)
	})

	t.Run("escaped braces", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.Format, `{{"n": {n}}}`)
		require.Equal(t, `{"n": 3}`, render(t, fn, map[string]any{"n": 3}))
	})

	t.Run("struct fields", func(t *testing.T) {
		t.Parallel()

		type user struct{ Name string }
		fn := compile(t, reg, renderer.Format, "{user.Name}")
		require.Equal(t, "flynn", render(t, fn, map[string]any{"user": &user{Name: "flynn"}}))
	})

	t.Run("missing name fails", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.Format, "{nope}")
		_, err := fn(map[string]any{})
		require.ErrorIs(t, err, renderer.ErrMissingKey)

		fn = compile(t, reg, renderer.Format, "{a.b}")
		_, err = fn(map[string]any{"a": map[string]any{}})
		require.ErrorIs(t, err, renderer.ErrMissingKey)
		require.Contains(t, err.Error(), "a.b")
	})

	t.Run("unbalanced braces fail to compile", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"{", "}", "a } b", "{}", "{a b}"} {
			_, err := reg.Compile(renderer.Format, "bad.spt", []byte(raw))
			require.ErrorIs(t, err, renderer.ErrCompile, raw)
		}
	})
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	reg := renderer.NewRegistry()
	require.NoError(t, reg.Configure(renderer.Config{Funcs: map[string]any{"shout": func(s string) string { return s + "!" }}}))

	t.Run("text template", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.TextTemplate, `{{.name | shout}} <{{.tag}}>`)
		require.Equal(t, "program! <b>", render(t, fn, map[string]any{"name": "program", "tag": "b"}))
	})

	t.Run("html template escapes", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.HTMLTemplate, `<p>{{.body}}</p>{{sanitize .trusted}}`)
		out := render(t, fn, map[string]any{
			"body":    "<script>x</script>",
			"trusted": "<em>ok</em><script>y</script>",
		})
		require.Equal(t, "<p>&lt;script&gt;x&lt;/script&gt;</p><em>ok</em>", out)
	})

	t.Run("missing key fails", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.TextTemplate, `{{.missing}}`)
		_, err := fn(map[string]any{})
		require.Error(t, err)
	})
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("converts after interpolation", func(t *testing.T) {
		t.Parallel()

		reg := renderer.NewRegistry()
		fn := compile(t, reg, renderer.Markdown, "# Hello {{.name}}\n\n*emphasis*\n")
		out := render(t, fn, map[string]any{"name": "program"})
		require.Contains(t, out, "<h1>Hello program</h1>")
		require.Contains(t, out, "<em>emphasis</em>")
	})

	t.Run("sanitizes raw html when configured", func(t *testing.T) {
		t.Parallel()

		reg := renderer.NewRegistry()
		reg.SetOptions(renderer.Markdown, map[string]any{"sanitize": "safe"})
		require.NoError(t, reg.Configure(renderer.Config{}))

		fn := compile(t, reg, renderer.Markdown, "**bold**\n\n<script>alert(1)</script>\n")
		out := render(t, fn, nil)
		require.Contains(t, out, "<strong>bold</strong>")
		require.NotContains(t, out, "script")
	})
}

func TestDump(t *testing.T) {
	t.Parallel()

	reg := renderer.NewRegistry()
	data := map[string]any{"name": "program", "n": 2}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.JSONDump, `{"name": name, "double": n * 2}`)
		require.JSONEq(t, `{"name":"program","double":4}`, render(t, fn, data))
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.YAMLDump, `{"name": name}`)
		require.Equal(t, "name: program\n", render(t, fn, data))
	})

	t.Run("unbound name", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.JSONDump, `{"name": nosuchname}`)
		_, err := fn(data)
		require.ErrorIs(t, err, renderer.ErrMissingKey)
		require.Contains(t, err.Error(), "nosuchname")
	})

	t.Run("empty expression", func(t *testing.T) {
		t.Parallel()

		_, err := reg.Compile(renderer.JSONDump, "x.spt", []byte("  \n"))
		require.ErrorIs(t, err, renderer.ErrCompile)
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()

		fn := compile(t, reg, renderer.Raw, "{not a template}")
		require.Equal(t, "{not a template}", render(t, fn, nil))
	})
}

func TestDeterministicRecompile(t *testing.T) {
	t.Parallel()

	reg := renderer.NewRegistry()
	data := map[string]any{
		"name":  "program",
		"items": []any{"a", "b"},
		"meta":  map[string]any{"z": 1, "a": 2},
	}

	pages := map[string]string{
		renderer.Format:       "{name} {meta.a}",
		renderer.TextTemplate: "{{range $k, $v := .meta}}{{$k}}={{$v}};{{end}}",
		renderer.HTMLTemplate: "<b>{{.name}}</b>",
		renderer.Markdown:     "- {{index .items 0}}\n- {{index .items 1}}\n",
		renderer.JSONDump:     "meta",
		renderer.YAMLDump:     "meta",
	}

	for name, raw := range pages {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			first := render(t, compile(t, reg, name, raw), data)
			second := render(t, compile(t, reg, name, raw), data)
			require.Equal(t, first, second)
		})
	}
}

func TestComponent(t *testing.T) {
	t.Parallel()

	reg := renderer.NewRegistry()
	fn := compile(t, reg, renderer.Format, "Greetings, {name}!")

	var buf bytes.Buffer
	err := renderer.Component(fn, map[string]any{"name": "program"}).Render(context.Background(), &buf)
	require.NoError(t, err)
	require.Equal(t, "Greetings, program!", buf.String())

	err = renderer.Component(fn, map[string]any{}).Render(context.Background(), &buf)
	require.ErrorIs(t, err, renderer.ErrMissingKey)
}
