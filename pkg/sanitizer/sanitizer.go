// Package sanitizer cleans rendered HTML with bluemonday policies.
package sanitizer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy names accepted by Lookup.
const (
	Strict = "strict" // strips all HTML, leaves text
	Safe   = "safe"   // basic formatting for user content
	UGC    = "ugc"    // bluemonday's user generated content policy
)

// ErrUnknownPolicy is returned by Lookup for unregistered policy names.
var ErrUnknownPolicy = errors.New("sanitizer: unknown policy")

var (
	policies map[string]*bluemonday.Policy
	initOnce sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		safe := bluemonday.NewPolicy()
		safe.AllowStandardURLs()
		safe.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safe.AllowAttrs("href").OnElements("a")
		safe.AllowElements("a")
		safe.RequireNoFollowOnLinks(true)

		policies = map[string]*bluemonday.Policy{
			Strict: bluemonday.StrictPolicy(),
			Safe:   safe,
			UGC:    bluemonday.UGCPolicy(),
		}
	})
}

// Lookup returns the named policy.
func Lookup(name string) (*bluemonday.Policy, error) {
	initPolicies()
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// SanitizeHTML applies the safe policy.
func SanitizeHTML(s string) string {
	initPolicies()
	return policies[Safe].Sanitize(s)
}

// StripTags applies the strict policy.
func StripTags(s string) string {
	initPolicies()
	return policies[Strict].Sanitize(s)
}

// SanitizeBytes applies policy to b. A nil policy returns b unchanged.
func SanitizeBytes(b []byte, policy *bluemonday.Policy) []byte {
	if policy == nil {
		return b
	}
	return policy.SanitizeBytes(b)
}
