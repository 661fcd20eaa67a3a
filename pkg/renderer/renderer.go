package renderer

import (
	"context"
	"io"
	"log/slog"

	"github.com/a-h/templ"
)

// Built-in renderer names.
const (
	Format       = "stdlib_format"
	TextTemplate = "stdlib_template"
	HTMLTemplate = "html_template"
	Markdown     = "markdown"
	JSONDump     = "json_dump"
	YAMLDump     = "yaml_dump"
	Raw          = "raw"
)

// RenderFunc renders a compiled page with the given data.
type RenderFunc func(data map[string]any) ([]byte, error)

// Renderer compiles raw page bytes into a RenderFunc.
type Renderer interface {
	Compile(filepath string, raw []byte) (RenderFunc, error)
}

// CompileFunc adapts a function to the Renderer interface.
type CompileFunc func(filepath string, raw []byte) (RenderFunc, error)

// Compile calls f.
func (f CompileFunc) Compile(filepath string, raw []byte) (RenderFunc, error) {
	return f(filepath, raw)
}

// Config is handed to every factory when the registry is configured.
type Config struct {
	// Funcs are extra template functions for template based renderers.
	Funcs map[string]any
	// Options are renderer specific settings, set per name via Registry.SetOptions.
	Options map[string]any
	Logger  *slog.Logger
	// Root is the website root the pages are loaded from.
	Root string
}

// Option returns a string option or def.
func (c Config) Option(key, def string) string {
	if v, ok := c.Options[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Factory builds a Renderer from configuration.
type Factory func(cfg Config) (Renderer, error)

// Render calls fn with data. Errors raised by the page itself are returned
// unchanged.
func Render(fn RenderFunc, data map[string]any) ([]byte, error) {
	return fn(data)
}

// Component exposes a compiled page as a templ component, so Go layouts can
// embed simplate output.
func Component(fn RenderFunc, data map[string]any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out, err := fn(data)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}
