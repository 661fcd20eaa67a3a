package internal

import (
	"strings"
)

// ExtractorSource reads a value from a request.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(*Request) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(req *Request) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(req); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		v := req.Header.Get(name)
		return v, v != ""
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		v := req.Query().Get(name)
		return v, v != ""
	}
}

// FromCookie reads a cookie.
func FromCookie(name string) ExtractorSource {
	return func(req *Request) (string, bool) {
		v, ok := req.Cookie(name)
		return v, ok && v != ""
	}
}

// FromBearerToken reads a Bearer token from the Authorization header.
// The "Bearer " prefix is matched case-insensitively.
func FromBearerToken() ExtractorSource {
	return func(req *Request) (string, bool) {
		auth := req.Header.Get("Authorization")
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			return "", false
		}
		token := auth[7:]
		return token, token != ""
	}
}
