package renderer

import (
	"bytes"
	"fmt"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/pando/pkg/sanitizer"
)

// NewMarkdown builds the markdown renderer.
//
// The page is first executed as a text/template, so context values can be
// interpolated, and the result is converted from GitHub flavored markdown to
// HTML. Options["sanitize"] selects a bluemonday policy (strict, safe, ugc)
// applied to the HTML; raw HTML in the source is only kept when a policy is set.
func NewMarkdown(cfg Config) (Renderer, error) {
	var policy *bluemonday.Policy
	if name := cfg.Option("sanitize", ""); name != "" {
		p, err := sanitizer.Lookup(name)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	opts := []goldmark.Option{goldmark.WithExtensions(extension.GFM)}
	if policy != nil {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	md := goldmark.New(opts...)

	return CompileFunc(func(filepath string, raw []byte) (RenderFunc, error) {
		tmpl, err := texttemplate.New(filepath).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, err
		}

		return func(data map[string]any) ([]byte, error) {
			var src bytes.Buffer
			if err := tmpl.Execute(&src, data); err != nil {
				return nil, err
			}

			var out bytes.Buffer
			if err := md.Convert(src.Bytes(), &out); err != nil {
				return nil, fmt.Errorf("convert markdown: %w", err)
			}

			return sanitizer.SanitizeBytes(out.Bytes(), policy), nil
		}, nil
	}), nil
}
