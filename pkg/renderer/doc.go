// Package renderer compiles simplate content pages into reusable render functions.
//
// A renderer is chosen per content page, by explicit name (from the page's
// specline), by media type default, or by the registry default. Each renderer
// compiles a page once into a RenderFunc; the RenderFunc holds no per-request
// state and is safe to call from many goroutines with different data.
//
// # Plugin Interface
//
//	Factory(cfg Config) (Renderer, error)             // once per process configuration
//	Renderer.Compile(filepath, raw) (RenderFunc, error) // once per page
//	RenderFunc(data) ([]byte, error)                  // once per request
//
// # Built-in Renderers
//
//   - stdlib_format: "{name}" and "{name.key}" substitution, "{{" and "}}" escape braces
//   - stdlib_template: text/template
//   - html_template: html/template with contextual escaping
//   - markdown: text/template, then goldmark; Options["sanitize"] picks a bluemonday policy
//   - json_dump: evaluates the page as an expression and encodes the result as JSON
//   - yaml_dump: same as json_dump, encoded as YAML
//   - raw: returns the page unchanged
//
// # Registry
//
//	reg := renderer.NewRegistry()
//	reg.Register("shout", shoutFactory)
//	reg.SetOptions("markdown", map[string]any{"sanitize": "safe"})
//	if err := reg.Configure(renderer.Config{}); err != nil {
//	    return err // a renderer could not be initialized
//	}
//
//	name, err := reg.Resolve("", "text/html")
//	fn, err := reg.Compile(name, "www/index.spt", body)
//	out, err := fn(map[string]any{"name": "program"})
//
// Registration happens at configuration time; after Configure the registry is
// only read.
package renderer
