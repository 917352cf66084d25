package profile

import (
	"regexp"
	"strings"
)

var (
	snakeSeparators = regexp.MustCompile(`[- ]`)
	snakeCamelRun   = regexp.MustCompile(`([^_])([A-Z][a-z]+)`)
	snakeBoundary   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnakeCase converts a display name to snake case: spaces and
// hyphens become underscores, camel-case boundaries split, acronym
// runs keep their last letter with the following word.
func ToSnakeCase(name string) string {
	s := snakeSeparators.ReplaceAllString(name, "_")
	s = snakeCamelRun.ReplaceAllString(s, "${1}_${2}")
	s = snakeBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
