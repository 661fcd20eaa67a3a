package internal

// HandlerFunc handles a request. A returned *Response error short-circuits
// to that response; any other error goes to the ErrorHandler.
type HandlerFunc func(req *Request) (*Response, error)

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Timing(next pando.HandlerFunc) pando.HandlerFunc {
//	    return func(req *pando.Request) (*pando.Response, error) {
//	        start := time.Now()
//	        resp, err := next(req)
//	        if resp != nil {
//	            resp.WithHeader("Server-Timing", fmt.Sprintf("app;dur=%d", time.Since(start).Milliseconds()))
//	        }
//	        return resp, err
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns an unexpected error into the response sent to the client.
type ErrorHandler func(req *Request, err error) *Response

// LogicFunc is Go logic registered for a resource path. It runs before the
// resource's logic page and can bind names with c.Set or stop the request by
// returning a *Response (c.Abort, c.Redirect).
type LogicFunc func(c *Context) error

// chain applies middlewares so the first one is the outermost.
func chain(h HandlerFunc, mws []Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
