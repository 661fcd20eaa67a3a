package renderer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/pando/pkg/logic"
)

// NewJSONDump builds the json_dump renderer.
//
// The page body is an expression evaluated against the context; the result is
// encoded as JSON. Options["indent"] sets an indentation string.
func NewJSONDump(cfg Config) (Renderer, error) {
	indent := cfg.Option("indent", "")

	return dumpRenderer(func(v any) ([]byte, error) {
		if indent != "" {
			return json.MarshalIndent(v, "", indent)
		}
		return json.Marshal(v)
	}), nil
}

// NewYAMLDump builds the yaml_dump renderer.
// Like json_dump, with the result encoded as YAML.
func NewYAMLDump(Config) (Renderer, error) {
	return dumpRenderer(yaml.Marshal), nil
}

// NewRaw builds the raw renderer, which returns the page unchanged.
func NewRaw(Config) (Renderer, error) {
	return CompileFunc(func(_ string, raw []byte) (RenderFunc, error) {
		out := bytes.Clone(raw)
		return func(map[string]any) ([]byte, error) {
			return out, nil
		}, nil
	}), nil
}

func dumpRenderer(encode func(any) ([]byte, error)) Renderer {
	return CompileFunc(func(_ string, raw []byte) (RenderFunc, error) {
		src := string(bytes.TrimSpace(raw))
		if src == "" {
			return nil, errors.New("empty expression")
		}

		program, err := expr.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile expression: %w", err)
		}

		names := logic.FreeNames(program)

		return func(data map[string]any) ([]byte, error) {
			for _, name := range names {
				if _, ok := data[name]; !ok {
					return nil, fmt.Errorf("%w: %s", ErrMissingKey, name)
				}
			}

			v, err := expr.Run(program, data)
			if err != nil {
				return nil, fmt.Errorf("evaluate expression: %w", err)
			}
			return encode(v)
		}, nil
	})
}
