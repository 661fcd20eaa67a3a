package internal

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"slices"
	"strconv"
)

// Response is the outbound side of one HTTP transaction.
//
// A *Response is also an error: returning one from a hook, logic function or
// handler short-circuits the pipeline, and Catch turns it back into the
// response sent to the client. Body and Stream are written in that order.
type Response struct {
	Header http.Header
	Stream iter.Seq[[]byte]
	Body   []byte
	Code   int
}

// NewResponse creates a response with code and the concatenated body chunks.
func NewResponse(code int, body ...string) *Response {
	r := &Response{Code: code, Header: make(http.Header)}
	for _, b := range body {
		r.Body = append(r.Body, b...)
	}
	return r
}

// Redirect creates a redirect to url. A code of 0 means 302 Found.
func Redirect(url string, code int) *Response {
	if code == 0 {
		code = http.StatusFound
	}
	r := NewResponse(code)
	r.Header.Set("Location", url)
	return r
}

// Error implements error. It returns the status line.
func (r *Response) Error() string {
	return r.StatusLine()
}

// StatusCode returns the code, treating 0 as 200.
func (r *Response) StatusCode() int {
	if r.Code == 0 {
		return http.StatusOK
	}
	return r.Code
}

// StatusLine returns the code and reason phrase, e.g. "200 OK".
func (r *Response) StatusLine() string {
	code := r.StatusCode()
	text := http.StatusText(code)
	if text == "" {
		text = "Unknown"
	}
	return strconv.Itoa(code) + " " + text
}

// WithHeader sets a header and returns r.
func (r *Response) WithHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
	return r
}

// SetCookie adds a Set-Cookie header. Invalid cookies are dropped.
func (r *Response) SetCookie(c *http.Cookie) *Response {
	if v := c.String(); v != "" {
		if r.Header == nil {
			r.Header = make(http.Header)
		}
		r.Header.Add("Set-Cookie", v)
	}
	return r
}

// Chunks yields the body followed by the stream.
func (r *Response) Chunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if len(r.Body) > 0 && !yield(r.Body) {
			return
		}
		if r.Stream == nil {
			return
		}
		for chunk := range r.Stream {
			if !yield(chunk) {
				return
			}
		}
	}
}

// Bytes returns the full body, draining the stream.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	for chunk := range r.Chunks() {
		buf.Write(chunk)
	}
	return buf.Bytes()
}

// Wire returns the status line, the header pairs sorted by name with values
// in insertion order, and the body chunks.
func (r *Response) Wire() (string, [][2]string, iter.Seq[[]byte]) {
	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range r.Header[k] {
			pairs = append(pairs, [2]string{k, v})
		}
	}
	return r.StatusLine(), pairs, r.Chunks()
}

// Send writes r to w.
func (r *Response) Send(w http.ResponseWriter) error {
	h := w.Header()
	for k, vs := range r.Header {
		h[k] = slices.Clone(vs)
	}
	code := r.StatusCode()
	if !bodyAllowed(code) {
		w.WriteHeader(code)
		return nil
	}
	if r.Stream == nil && h.Get("Content-Length") == "" {
		h.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	w.WriteHeader(code)

	flusher, _ := w.(http.Flusher)
	for chunk := range r.Chunks() {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("pando: write response: %w", err)
		}
		if r.Stream != nil && flusher != nil {
			flusher.Flush()
		}
	}
	return nil
}

func bodyAllowed(code int) bool {
	return code >= 200 && code != http.StatusNoContent && code != http.StatusNotModified
}

// AsResponse reports whether err is, or wraps, a *Response.
func AsResponse(err error) (*Response, bool) {
	var resp *Response
	if errors.As(err, &resp) && resp != nil {
		return resp, true
	}
	return nil, false
}
