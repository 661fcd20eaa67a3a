// Package middlewares provides request middleware for pando websites.
//
// # Request ID
//
// RequestID assigns an ID to each request, keeping one sent by the client in
// X-Request-ID or X-Correlation-ID and generating a UUID otherwise. The ID is
// echoed in the response and available from the request context:
//
//	log := logger.New(cfg, os.Stdout, middlewares.RequestIDExtractor())
//
//	app, err := pando.New(
//	    pando.WithLogger(log),
//	    pando.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(log),
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    ),
//	)
//
// # Logging
//
// Logging writes one line per request with method, path, status and
// duration. Short-circuit responses (abort, redirect, 404) are logged like
// rendered ones; unexpected errors are logged at error level.
//
// # Recover
//
// Recover turns a panic in hooks, logic or renderers into a *PanicError for
// the website's ErrorHandler, which answers 500.
//
// # Timeout
//
// Timeout bounds the time spent in the pipeline and returns a *TimeoutError,
// answered with 503 by the default error handler. The request context is
// cancelled at the deadline.
package middlewares
