// Package inject resolves named arguments for functions that declare their
// parameters as data.
//
// Hooks and logic handlers in pando do not share a fixed signature. Each one
// declares the names it wants (and optional defaults) in a Signature, and the
// caller supplies whatever values it has in a plain map. Resolve walks the
// declared parameters against that map and returns only the subset the target
// asked for.
//
// # Basic Usage
//
//	sig := inject.Signature{
//		inject.Required("request"),
//		inject.Optional("website", nil),
//	}
//
//	args := inject.Resolve(sig, map[string]any{
//		"request":  req,
//		"response": resp, // not declared, never passed
//	})
//
//	req, _ := inject.Value[*pando.Request](args, "request")
//
// # Binding Rules
//
// For every declared parameter, in declaration order:
//   - a value present in the available map is bound (it wins over a default)
//   - otherwise a declared default is bound
//   - otherwise the name is omitted
//
// Resolution is by name only, never by position, and is idempotent: the same
// signature and available map always produce the same Args. Resolve never
// fails; CheckRequired reports missing required arguments, and Func.Invoke
// refuses to call a function while any are missing.
package inject
