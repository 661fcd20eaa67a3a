// Package hooks provides filters that apply a hook only to some requests.
//
// A filtered hook passes the request through unchanged when its policy says
// to skip it:
//
//	auth := pando.NewHook(requireLogin)
//
//	pando.WithHooks(
//	    hooks.ByRegex(auth, []hooks.Pattern{
//	        hooks.Rule(`^/public/`, false),
//	        hooks.Rule(`^/`, true),
//	    }, true),
//	    hooks.ByDict(auth, map[string]bool{"/login": false}, true),
//	)
package hooks
