// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that is not a word char, whitespace, or hyphen.
	nonWord = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// separators collapses whitespace, underscores, and hyphen runs into one hyphen.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Derive creates a slug from the given name. The derivation is deterministic
// and idempotent: deriving from an unchanged name yields the same slug.
// Example: "Memory_Foam  Mattress!" → "memory-foam-mattress"
func Derive(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
