package simplate

import "errors"

var (
	// ErrMalformedSpecline indicates a content page header that cannot be parsed.
	ErrMalformedSpecline = errors.New("simplate: malformed specline")

	// ErrDuplicateMediaType indicates two content pages declaring the same media type.
	ErrDuplicateMediaType = errors.New("simplate: duplicate media type")

	// ErrTooManyPages indicates a rendered resource with more than one content page.
	ErrTooManyPages = errors.New("simplate: rendered resource must have exactly one content page")

	// ErrNoContent indicates a simplate without any content page.
	ErrNoContent = errors.New("simplate: no content page")
)
