// Package sanitize converts display names into safe filesystem path segments.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	separators  = regexp.MustCompile(`[\s/\\:]+`)
	disallowed  = regexp.MustCompile(`[^\w\-.]`)
	underscores = regexp.MustCompile(`_{2,}`)
	hyphens     = regexp.MustCompile(`-{2,}`)
)

// Name reduces an arbitrary display string to characters safe for use as a
// single path segment. Runs of whitespace and path separators become a single
// underscore, anything outside [A-Za-z0-9_.-] is dropped, and repeated or
// edge underscores/hyphens are collapsed away. The result is never empty; a
// string with nothing left returns "unnamed".
func Name(s string) string {
	s = strings.TrimSpace(s)
	s = separators.ReplaceAllString(s, "_")
	s = disallowed.ReplaceAllString(s, "")
	s = underscores.ReplaceAllString(s, "_")
	s = hyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "_-")
	if s == "" {
		return "unnamed"
	}
	return s
}
