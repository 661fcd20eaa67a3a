package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxBodySize caps request bodies read into a Request.
const DefaultMaxBodySize int64 = 10 << 20 // 10MB

// Request is the inbound side of one HTTP transaction. The body is read in
// full when the request is built.
type Request struct {
	ctx     context.Context
	raw     *http.Request
	URL     *url.URL
	Header  http.Header
	Cookies map[string]string
	Method  string
	Body    []byte
}

// NewRequest reads r into a Request. Bodies larger than maxBody fail with
// ErrBodyTooLarge; maxBody <= 0 means DefaultMaxBodySize.
func NewRequest(r *http.Request, maxBody int64) (*Request, error) {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("pando: read request body: %w", err)
		}
		if int64(len(b)) > maxBody {
			return nil, ErrBodyTooLarge
		}
		body = b
	}

	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		if _, ok := cookies[c.Name]; !ok {
			cookies[c.Name] = c.Value
		}
	}

	u := *r.URL
	return &Request{
		ctx:     r.Context(),
		raw:     r,
		Method:  strings.ToUpper(r.Method),
		URL:     &u,
		Header:  r.Header.Clone(),
		Cookies: cookies,
		Body:    body,
	}, nil
}

// NewTestRequest builds a Request without a transport, for driving App.Handle
// directly. target may carry a query string.
func NewTestRequest(method, target string, body []byte) *Request {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		u = &url.URL{Path: target}
	}
	return &Request{
		ctx:     context.Background(),
		Method:  strings.ToUpper(method),
		URL:     u,
		Header:  make(http.Header),
		Cookies: make(map[string]string),
		Body:    body,
	}
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	r2 := *r
	u := *r.URL
	r2.URL = &u
	r2.Header = r.Header.Clone()
	r2.Cookies = maps.Clone(r.Cookies)
	r2.Body = bytes.Clone(r.Body)
	return &r2
}

// HTTPRequest returns the *http.Request r was built from, or nil.
func (r *Request) HTTPRequest() *http.Request {
	return r.raw
}

// Path returns the URL path.
func (r *Request) Path() string {
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}

// Query returns the parsed query string.
func (r *Request) Query() url.Values {
	return r.URL.Query()
}

// URI returns the path and query string.
func (r *Request) URI() string {
	return r.URL.RequestURI()
}

// Cookie returns a cookie value.
func (r *Request) Cookie(name string) (string, bool) {
	v, ok := r.Cookies[name]
	return v, ok
}
