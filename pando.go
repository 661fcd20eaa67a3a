package pando

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/inject"
	"github.com/dmitrymomot/pando/pkg/logger"
	"github.com/dmitrymomot/pando/pkg/renderer"
)

// Type aliases - public API
type (
	// App is a website serving simplates and static files from a www root.
	App = internal.App

	// Request is the transport-free view of an HTTP request.
	Request = internal.Request

	// Response is a status, headers and body. It implements error so any
	// stage of the pipeline can return it to short-circuit.
	Response = internal.Response

	// Context is the per-request namespace exposed to logic and pages.
	Context = internal.Context

	// HandlerFunc is the signature of the request pipeline.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler turns pipeline errors into responses.
	ErrorHandler = internal.ErrorHandler

	// LogicFunc is Go logic run for a simplate before its logic page.
	LogicFunc = internal.LogicFunc

	// Hook runs before a resource is resolved.
	Hook = internal.Hook

	// OutboundHook runs after a resource is rendered.
	OutboundHook = internal.OutboundHook

	// Option configures the website.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// NameError reports a lookup of an unbound context name.
	NameError = internal.NameError

	// Args are the values resolved for a hook's parameters.
	Args = inject.Args

	// Signature declares the parameters of a hook.
	Signature = inject.Signature

	// RendererFactory builds a renderer from the website configuration.
	RendererFactory = renderer.Factory

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Sentinel errors.
var (
	ErrNameNotFound  = internal.ErrNameNotFound
	ErrReservedName  = internal.ErrReservedName
	ErrTypeMismatch  = internal.ErrTypeMismatch
	ErrBodyTooLarge  = internal.ErrBodyTooLarge
	ErrInvalidConfig = internal.ErrInvalidConfig
)

// Names available to hooks.
const (
	HookRequest  = internal.HookRequest
	HookResponse = internal.HookResponse
	HookContext  = internal.HookContext
	HookWebsite  = internal.HookWebsite
)

// DefaultMediaType is the media type of pages without a specline.
const DefaultMediaType = internal.DefaultMediaType

// New creates a website with the given options.
//
// Example:
//
//	app, err := pando.New(
//	    pando.WithRoot("www"),
//	    pando.WithMiddleware(middlewares.Recover()),
//	)
//	if err != nil {
//	    return err
//	}
//
//	err = app.Run(":8080", pando.Logger(log))
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// NewResponse creates a response with the given status and optional body.
func NewResponse(code int, body ...string) *Response {
	return internal.NewResponse(code, body...)
}

// Redirect creates a redirect response. A zero code means 302.
func Redirect(url string, code int) *Response {
	return internal.Redirect(url, code)
}

// AsResponse reports whether err is a short-circuit *Response.
func AsResponse(err error) (*Response, bool) {
	return internal.AsResponse(err)
}

// NewRequest wraps an HTTP request, reading at most maxBody bytes of body.
func NewRequest(r *http.Request, maxBody int64) (*Request, error) {
	return internal.NewRequest(r, maxBody)
}

// NewTestRequest builds a request without a transport, for tests and
// embedding.
func NewTestRequest(method, target string, body []byte) *Request {
	return internal.NewTestRequest(method, target, body)
}

// NewContext builds the namespace for req.
func NewContext(req *Request) *Context {
	return internal.NewContext(req)
}

// Value returns the binding name from c as a T.
func Value[T any](c *Context, name string) (T, error) {
	return internal.Value[T](c, name)
}

// NewHook adapts a request-to-request function into a Hook.
func NewHook(fn func(req *Request) (*Request, error)) Hook {
	return internal.NewHook(fn)
}

// NewOutboundHook adapts a response-to-response function into an OutboundHook.
func NewOutboundHook(fn func(req *Request, resp *Response) (*Response, error)) OutboundHook {
	return internal.NewOutboundHook(fn)
}

// Catch converts a short-circuit *Response error into a regular response.
func Catch(next HandlerFunc) HandlerFunc {
	return internal.Catch(next)
}

// Serve adapts a pipeline to net/http. A nil ErrorHandler uses the default.
func Serve(h HandlerFunc, eh ErrorHandler) http.Handler {
	return internal.Serve(h, eh)
}

// DefaultErrorHandler logs err and responds 500, or the status of an error
// with a StatusCode() int method. In dev mode the body carries the error text.
func DefaultErrorHandler(log *slog.Logger, dev bool) ErrorHandler {
	return internal.DefaultErrorHandler(log, dev)
}
