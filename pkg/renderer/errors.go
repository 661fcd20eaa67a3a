package renderer

import "errors"

var (
	// ErrUnknownRenderer is returned when no factory is registered under a name.
	ErrUnknownRenderer = errors.New("renderer: unknown renderer")

	// ErrUnavailable is returned when a factory cannot build its renderer,
	// for example because a required option or backend is missing.
	ErrUnavailable = errors.New("renderer: unavailable")

	// ErrCompile is returned when a page fails to compile.
	ErrCompile = errors.New("renderer: compile failed")

	// ErrMissingKey is returned when a page references a name absent from the data.
	ErrMissingKey = errors.New("renderer: missing key")
)
