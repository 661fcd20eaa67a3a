package renderer

import (
	"bytes"
	"errors"
	"fmt"
)

var errUnbalancedBrace = errors.New("unbalanced brace")

// segment is either literal text or a field reference.
type segment struct {
	text  string
	field string
}

// NewFormat builds the stdlib_format renderer.
//
// Pages reference context values as "{name}" or "{name.key}". Literal braces
// are written "{{" and "}}". A reference to a missing name fails the render.
func NewFormat(Config) (Renderer, error) {
	return CompileFunc(compileFormat), nil
}

func compileFormat(_ string, raw []byte) (RenderFunc, error) {
	segments, err := parseFormat(raw)
	if err != nil {
		return nil, err
	}

	return func(data map[string]any) ([]byte, error) {
		var buf bytes.Buffer
		for _, s := range segments {
			if s.field == "" {
				buf.WriteString(s.text)
				continue
			}
			v, err := lookup(data, s.field)
			if err != nil {
				return nil, err
			}
			buf.WriteString(stringify(v))
		}
		return buf.Bytes(), nil
	}, nil
}

func parseFormat(raw []byte) ([]segment, error) {
	var (
		segments []segment
		lit      bytes.Buffer
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := bytes.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w at offset %d", errUnbalancedBrace, i)
			}
			field := string(bytes.TrimSpace(raw[i+1 : i+1+end]))
			if field == "" || bytes.ContainsAny([]byte(field), "{ \t\n") {
				return nil, fmt.Errorf("invalid field %q at offset %d", field, i)
			}
			flush()
			segments = append(segments, segment{field: field})
			i += end + 1
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w at offset %d", errUnbalancedBrace, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segments, nil
}
