// Package internal provides the core types and implementation of pando.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/pando" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: the website. Maps URL paths to simplates and static files in a
//     www root, runs the request pipeline and the HTTP server.
//   - Request and Response: the inbound and outbound sides of a transaction.
//     A *Response is also an error and short-circuits the pipeline.
//   - Context: the per-request namespace seen by logic and content pages.
//   - Hook and OutboundHook: ordered callbacks around resource resolution,
//     with parameters resolved by name from the available values.
//   - HandlerFunc, Middleware, ErrorHandler and LogicFunc.
//
// # Pipeline
//
// A request flows through the middleware, then the inbound hooks, then
// dispatch to a file. Simplates get a fresh Context, run the Go logic
// registered for their path and their logic page, then render the content
// page chosen by content negotiation. Outbound hooks see the rendered
// response. Returning a *Response from any step ends the request with it:
//
//	pando.WithLogic("/admin.spt", func(c *pando.Context) error {
//	    if c.Cookie["session"] == "" {
//	        return c.Redirect("/login", 0)
//	    }
//	    return nil
//	})
//
// Catch, applied once in Serve, turns such a response back into a regular
// one. Any other error reaches the ErrorHandler.
//
// # Compiled Resources
//
// Simplates are compiled on first use (or in New with WithPrecompile) and
// kept in an LRU cache. Concurrent first requests share one compile. With
// WithReload the cache key includes the file's content hash.
package internal
