package simplate

import (
	"fmt"
	"strings"
)

// speclinePrefix marks the first line of a content page as a specline.
const speclinePrefix = "#!"

// Specline is the parsed header of a content page.
// Either field may be empty.
type Specline struct {
	Renderer  string
	MediaType string
}

// IsZero reports whether the specline declares nothing.
func (s Specline) IsZero() bool {
	return s.Renderer == "" && s.MediaType == ""
}

// String formats the specline in its canonical on-disk form.
func (s Specline) String() string {
	switch {
	case s.Renderer != "" && s.MediaType != "":
		return speclinePrefix + s.Renderer + " via " + s.MediaType
	case s.Renderer != "":
		return speclinePrefix + s.Renderer
	case s.MediaType != "":
		return speclinePrefix + s.MediaType
	}
	return ""
}

// ParseSpecline parses a "#!..." line.
//
// Accepted forms:
//
//	#!renderer
//	#!renderer via media/type
//	#!media/type
func ParseSpecline(line string) (Specline, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(line), speclinePrefix)
	if !ok {
		return Specline{}, fmt.Errorf("%w: missing %q prefix: %q", ErrMalformedSpecline, speclinePrefix, line)
	}

	fields := strings.Fields(body)
	switch len(fields) {
	case 1:
		if isMediaType(fields[0]) {
			return Specline{MediaType: strings.ToLower(fields[0])}, nil
		}
		if !isRendererName(fields[0]) {
			return Specline{}, fmt.Errorf("%w: invalid renderer name %q", ErrMalformedSpecline, fields[0])
		}
		return Specline{Renderer: fields[0]}, nil
	case 3:
		if fields[1] != "via" {
			return Specline{}, fmt.Errorf("%w: expected \"via\", got %q", ErrMalformedSpecline, fields[1])
		}
		if !isRendererName(fields[0]) {
			return Specline{}, fmt.Errorf("%w: invalid renderer name %q", ErrMalformedSpecline, fields[0])
		}
		if !isMediaType(fields[2]) {
			return Specline{}, fmt.Errorf("%w: invalid media type %q", ErrMalformedSpecline, fields[2])
		}
		return Specline{Renderer: fields[0], MediaType: strings.ToLower(fields[2])}, nil
	}

	return Specline{}, fmt.Errorf("%w: %q", ErrMalformedSpecline, line)
}

func isMediaType(s string) bool {
	typ, sub, ok := strings.Cut(s, "/")
	return ok && typ != "" && sub != "" && !strings.Contains(sub, "/")
}

func isRendererName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
