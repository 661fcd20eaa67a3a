package hooks

import (
	"regexp"

	"github.com/dmitrymomot/pando/internal"
	"github.com/dmitrymomot/pando/pkg/inject"
)

// Pattern pairs a path pattern with whether the hook applies on a match.
type Pattern struct {
	Re    *regexp.Regexp
	Apply bool
}

// Rule compiles pattern. It panics on an invalid expression, like
// regexp.MustCompile, since rules are declared at startup.
func Rule(pattern string, apply bool) Pattern {
	return Pattern{Re: regexp.MustCompile(pattern), Apply: apply}
}

// ByRegex applies hook according to the first pattern matching the request
// path, in declaration order. Requests matching no pattern use def.
func ByRegex(hook internal.Hook, patterns []Pattern, def bool) internal.Hook {
	return filter(hook, func(path string) bool {
		for _, p := range patterns {
			if p.Re.MatchString(path) {
				return p.Apply
			}
		}
		return def
	})
}

// ByDict applies hook according to the exact request path in paths.
// Paths not in the map use def.
func ByDict(hook internal.Hook, paths map[string]bool, def bool) internal.Hook {
	return filter(hook, func(path string) bool {
		if apply, ok := paths[path]; ok {
			return apply
		}
		return def
	})
}

// filter wraps hook so it runs only when apply reports true for the request
// path. The wrapped hook also declares "request" but receives only the
// names it declared itself.
func filter(hook internal.Hook, apply func(path string) bool) internal.Hook {
	return internal.Hook{
		Params: hook.Params.Merge(inject.Required(internal.HookRequest)),
		Func: func(args inject.Args) (*internal.Request, error) {
			req, ok := inject.Value[*internal.Request](args, internal.HookRequest)
			if !ok || !apply(req.Path()) {
				return nil, nil
			}
			return hook.Run(args)
		},
	}
}
