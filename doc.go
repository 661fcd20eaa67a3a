// Package pando serves websites built from simplates: files that hold Go
// logic, an expression logic page and one or more templates in a single
// place, with the URL mapped straight onto the file system.
//
// # Quick Start
//
// Point a website at a www root and run it:
//
//	app, err := pando.New(pando.WithRoot("www"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Dispatch
//
// A request path is resolved against the www root:
//
//	/                  -> index.html.spt, index.spt or index.html
//	/about             -> about (static), then about.spt
//	/data.json         -> data.json (static), data.json.spt, then data.spt
//	                      rendered as application/json
//	/docs              -> 301 to /docs/
//
// Direct requests for .spt files and for hidden files are 404.
//
// # Simplates
//
// Pages are separated by form feeds (^L). The last page is a template; a page
// before it holds logic. With several template pages, each starts with a
// specline naming its renderer and media type:
//
//	name = "name" in qs ? qs.name : "program"
//	^L
//	#!text/plain
//	Greetings, {name}!
//	^L
//	#!json_dump via application/json
//	{"hello": name}
//
// Resources with several pages are negotiated against the Accept header;
// a request that matches none gets 406 listing the available types.
//
// # Logic
//
// Logic pages are expr statements evaluated against the request context.
// Assignments bind new names; abort, redirect, set_header and set_code are
// available:
//
//	user = "user" in cookie ? cookie.user : abort(401)
//	set_header("Cache-Control", "no-store")
//
// Go logic can run first, registered per file:
//
//	pando.WithLogic("/hello.spt", func(c *pando.Context) error {
//	    return c.Set("now", time.Now())
//	})
//
// # Short-circuit Responses
//
// A *Response implements error. Hooks, logic and middleware return one to stop
// the pipeline and answer with it:
//
//	return nil, pando.NewResponse(http.StatusForbidden, "no")
//
// # Hooks
//
// Inbound hooks run before the resource is resolved, outbound hooks after it
// is rendered. See the hooks package for path filters.
//
// # Renderers
//
// Built in: stdlib_format (the default), stdlib_template, html_template, markdown,
// json_dump, yaml_dump and raw. Register more with WithRenderer.
package pando
