// Package htmlsanitize strips dangerous markup from user-supplied rich
// text (profile bios) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic formatting and safe links. Scripts, event handler
// attributes, and javascript: URLs are removed.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
