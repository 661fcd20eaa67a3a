package renderer

import (
	"bytes"
	htmltemplate "html/template"
	"maps"
	texttemplate "text/template"

	"github.com/dmitrymomot/pando/pkg/sanitizer"
)

// NewTextTemplate builds the stdlib_template renderer.
// Missing map keys fail the render.
func NewTextTemplate(cfg Config) (Renderer, error) {
	funcs := texttemplate.FuncMap{
		"sanitize": sanitizer.SanitizeHTML,
		"strip":    sanitizer.StripTags,
	}
	maps.Copy(funcs, cfg.Funcs)

	return CompileFunc(func(filepath string, raw []byte) (RenderFunc, error) {
		tmpl, err := texttemplate.New(filepath).
			Funcs(funcs).
			Option("missingkey=error").
			Parse(string(raw))
		if err != nil {
			return nil, err
		}

		return func(data map[string]any) ([]byte, error) {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}, nil
	}), nil
}

// NewHTMLTemplate builds the html_template renderer.
// Output is escaped for its HTML context; "sanitize" returns markup that is
// trusted after cleaning.
func NewHTMLTemplate(cfg Config) (Renderer, error) {
	funcs := htmltemplate.FuncMap{
		"sanitize": func(s string) htmltemplate.HTML {
			return htmltemplate.HTML(sanitizer.SanitizeHTML(s)) //nolint:gosec // cleaned by bluemonday
		},
		"strip": sanitizer.StripTags,
	}
	maps.Copy(funcs, cfg.Funcs)

	return CompileFunc(func(filepath string, raw []byte) (RenderFunc, error) {
		tmpl, err := htmltemplate.New(filepath).
			Funcs(funcs).
			Option("missingkey=error").
			Parse(string(raw))
		if err != nil {
			return nil, err
		}

		return func(data map[string]any) ([]byte, error) {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}, nil
	}), nil
}
