// Package sanitize cleans user-submitted form values before they are stored
// or echoed back into a page. Uses bluemonday's strict policy, which strips
// all HTML elements and escapes markup-significant characters.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for plain-text form fields.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first
// call. Catalog form fields are plain text, so the strict policy applies: no
// elements survive, and <, >, & are entity-escaped.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text sanitizes a user-provided plain-text value. Markup is removed and any
// remaining markup-significant characters are escaped, so the result is safe
// to store and to render back into a form field.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}
