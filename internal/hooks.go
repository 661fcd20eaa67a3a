package internal

import (
	"github.com/dmitrymomot/pando/pkg/inject"
)

// Names available to hooks.
const (
	HookRequest  = "request"
	HookResponse = "response"
	HookContext  = "context"
	HookWebsite  = "website"
)

// Hook runs before a resource is resolved. Func receives the names declared
// in Params, resolved from the request, the website and, once built, the
// context. It returns a replacement request, nil to keep the current one, or
// a *Response error to short-circuit.
type Hook struct {
	Func   func(args inject.Args) (*Request, error)
	Params inject.Signature
}

// NewHook adapts a request-to-request function.
func NewHook(fn func(req *Request) (*Request, error)) Hook {
	return Hook{
		Params: inject.Signature{inject.Required(HookRequest)},
		Func: func(args inject.Args) (*Request, error) {
			req, _ := inject.Value[*Request](args, HookRequest)
			return fn(req)
		},
	}
}

// Run resolves h's parameters from available and calls it. A required
// parameter missing from available fails with inject.ErrMissingArgument.
func (h Hook) Run(available map[string]any) (*Request, error) {
	return inject.Func[*Request]{Call: h.Func, Params: h.Params}.Invoke(available)
}

// OutboundHook runs after a resource is rendered. It may return a
// replacement response or nil to keep the current one. Static files have no
// context, so hooks that may see them declare context as optional.
type OutboundHook struct {
	Func   func(args inject.Args) (*Response, error)
	Params inject.Signature
}

// NewOutboundHook adapts a function of the request and the rendered response.
func NewOutboundHook(fn func(req *Request, resp *Response) (*Response, error)) OutboundHook {
	return OutboundHook{
		Params: inject.Signature{inject.Required(HookRequest), inject.Required(HookResponse)},
		Func: func(args inject.Args) (*Response, error) {
			req, _ := inject.Value[*Request](args, HookRequest)
			resp, _ := inject.Value[*Response](args, HookResponse)
			return fn(req, resp)
		},
	}
}

// Run resolves h's parameters from available and calls it. A required
// parameter missing from available fails with inject.ErrMissingArgument.
func (h OutboundHook) Run(available map[string]any) (*Response, error) {
	return inject.Func[*Response]{Call: h.Func, Params: h.Params}.Invoke(available)
}

// runHooks runs the inbound chain in order, threading the request through.
func runHooks(hooks []Hook, req *Request, website *App) (*Request, error) {
	available := map[string]any{HookRequest: req, HookWebsite: website}
	for _, h := range hooks {
		next, err := h.Run(available)
		if err != nil {
			return nil, err
		}
		if next != nil {
			req = next
			available[HookRequest] = req
		}
	}
	return req, nil
}

// runOutboundHooks runs the outbound chain in order, threading the response
// through. c is nil for static files and then not offered to hooks.
func runOutboundHooks(hooks []OutboundHook, req *Request, c *Context, resp *Response, website *App) (*Response, error) {
	available := map[string]any{
		HookRequest:  req,
		HookResponse: resp,
		HookWebsite:  website,
	}
	if c != nil {
		available[HookContext] = c
	}
	for _, h := range hooks {
		next, err := h.Run(available)
		if err != nil {
			return nil, err
		}
		if next != nil {
			resp = next
			available[HookResponse] = resp
		}
	}
	return resp, nil
}
