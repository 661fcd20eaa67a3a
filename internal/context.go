package internal

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
)

// Methods lists the HTTP methods that get a flag on Context.
var Methods = []string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodTrace,
	http.MethodConnect,
}

// Names of the fixed context bindings.
const (
	NameBody    = "body"
	NameHeaders = "headers"
	NameCookie  = "cookie"
	NamePath    = "path"
	NameQs      = "qs"
	NameRequest = "request"
)

// Names of the functions bound for logic pages.
const (
	FuncAbort     = "abort"
	FuncRedirect  = "redirect"
	FuncSetHeader = "set_header"
	FuncSetCode   = "set_code"
)

var reserved = func() map[string]bool {
	m := map[string]bool{
		NameBody: true, NameHeaders: true, NameCookie: true,
		NamePath: true, NameQs: true, NameRequest: true,
		FuncAbort: true, FuncRedirect: true, FuncSetHeader: true, FuncSetCode: true,
	}
	for _, method := range Methods {
		m[method] = true
	}
	return m
}()

// Context is the per-request namespace exposed to logic and pages.
//
// The fixed fields are seeded from the request. Logic binds further names
// with Set; those live in a separate extension map and can never replace a
// fixed name. Exactly one of the method flags is true, and Get("GET") always
// agrees with c.GET.
type Context struct {
	Request *Request
	Headers http.Header
	Cookie  map[string]string
	Qs      url.Values
	ext     map[string]any
	halt    *Response
	header  http.Header
	Path    string
	Body    []byte
	code    int

	OPTIONS bool
	GET     bool
	HEAD    bool
	POST    bool
	PUT     bool
	DELETE  bool
	TRACE   bool
	CONNECT bool
}

// NewContext builds the context for req.
func NewContext(req *Request) *Context {
	c := &Context{
		Request: req,
		Body:    req.Body,
		Headers: req.Header,
		Cookie:  req.Cookies,
		Path:    req.Path(),
		Qs:      req.Query(),
		ext:     make(map[string]any),
		header:  make(http.Header),
	}

	switch req.Method {
	case http.MethodOptions:
		c.OPTIONS = true
	case http.MethodGet:
		c.GET = true
	case http.MethodHead:
		c.HEAD = true
	case http.MethodPost:
		c.POST = true
	case http.MethodPut:
		c.PUT = true
	case http.MethodDelete:
		c.DELETE = true
	case http.MethodTrace:
		c.TRACE = true
	case http.MethodConnect:
		c.CONNECT = true
	}

	return c
}

// Context returns the request's context.Context.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// Method reports whether the request used method m.
func (c *Context) Method(m string) bool {
	switch m {
	case http.MethodOptions:
		return c.OPTIONS
	case http.MethodGet:
		return c.GET
	case http.MethodHead:
		return c.HEAD
	case http.MethodPost:
		return c.POST
	case http.MethodPut:
		return c.PUT
	case http.MethodDelete:
		return c.DELETE
	case http.MethodTrace:
		return c.TRACE
	case http.MethodConnect:
		return c.CONNECT
	}
	return false
}

// Get returns the value bound to name. Unbound names fail with a *NameError.
func (c *Context) Get(name string) (any, error) {
	switch name {
	case NameBody:
		return c.Body, nil
	case NameHeaders:
		return c.Headers, nil
	case NameCookie:
		return c.Cookie, nil
	case NamePath:
		return c.Path, nil
	case NameQs:
		return c.Qs, nil
	case NameRequest:
		return c.Request, nil
	}
	if slices.Contains(Methods, name) {
		return c.Method(name), nil
	}
	if v, ok := c.ext[name]; ok {
		return v, nil
	}
	return nil, &NameError{Name: name}
}

// Has reports whether name is bound.
func (c *Context) Has(name string) bool {
	_, err := c.Get(name)
	return err == nil
}

// Set binds name. Fixed names and logic functions are rejected with
// ErrReservedName.
func (c *Context) Set(name string, value any) error {
	if reserved[name] {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	c.ext[name] = value
	return nil
}

// Value returns the binding for name as T.
func Value[T any](c *Context, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, not %T", ErrTypeMismatch, name, v, zero)
	}
	return t, nil
}

// Vars returns a snapshot of every binding for expressions and templates.
// Headers, cookies and the query string are flattened to map[string]string
// (first value wins) and request becomes a map of its parts, so pages can
// write request.cookie.Foo or headers.Accept.
func (c *Context) Vars() map[string]any {
	headers := flatten(c.Headers)
	qs := flatten(c.Qs)
	cookie := maps.Clone(c.Cookie)
	if cookie == nil {
		cookie = map[string]string{}
	}
	body := string(c.Body)

	vars := make(map[string]any, len(c.ext)+len(reserved))
	maps.Copy(vars, c.ext)

	vars[NameBody] = body
	vars[NameHeaders] = headers
	vars[NameCookie] = cookie
	vars[NamePath] = c.Path
	vars[NameQs] = qs
	vars[NameRequest] = map[string]any{
		"method":  c.Request.Method,
		"path":    c.Path,
		"uri":     c.Request.URI(),
		"qs":      qs,
		"headers": headers,
		"cookie":  cookie,
		"body":    body,
	}
	for _, m := range Methods {
		vars[m] = c.Method(m)
	}

	vars[FuncAbort] = func(code int, body ...string) *Response {
		return c.Abort(code, body...)
	}
	vars[FuncRedirect] = func(url string, code ...int) *Response {
		status := 0
		if len(code) > 0 {
			status = code[0]
		}
		return c.Redirect(url, status)
	}
	vars[FuncSetHeader] = func(name, value string) bool {
		c.SetHeader(name, value)
		return true
	}
	vars[FuncSetCode] = func(code int) bool {
		c.SetCode(code)
		return true
	}

	return vars
}

// Abort stops the request with a response of code and body. The returned
// *Response can also be returned as an error from Go logic.
func (c *Context) Abort(code int, body ...string) *Response {
	c.halt = NewResponse(code, body...)
	return c.halt
}

// Redirect stops the request with a redirect. A code of 0 means 302.
func (c *Context) Redirect(url string, code int) *Response {
	c.halt = Redirect(url, code)
	return c.halt
}

// Halted reports whether Abort or Redirect was called.
func (c *Context) Halted() bool {
	return c.halt != nil
}

// Halt returns the short-circuit response, or nil.
func (c *Context) Halt() *Response {
	return c.halt
}

// SetHeader sets a header on the rendered response.
func (c *Context) SetHeader(name, value string) {
	c.header.Set(name, value)
}

// SetCode sets the status code of the rendered response.
func (c *Context) SetCode(code int) {
	c.code = code
}

// ResponseHeader returns the headers set with SetHeader.
func (c *Context) ResponseHeader() http.Header {
	return c.header
}

// ResponseCode returns the code set with SetCode, or 200.
func (c *Context) ResponseCode() int {
	if c.code == 0 {
		return http.StatusOK
	}
	return c.code
}

func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}
