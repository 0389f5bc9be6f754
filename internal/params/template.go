// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"regexp"
	"strings"
)

var tokenRegex = regexp.MustCompile(`\{[^{}/]+\}`)

// Split splits a path on "/" keeping empty segments, so a leading slash
// produces an empty first segment and positions line up with Join.
func Split(path string) []string {
	return strings.Split(path, "/")
}

// Replace substitutes each matched segment of path with its parameter name.
// Replacement is keyed by segment index; when several matches share an
// index the last one wins.
func Replace(path string, matches []Match) string {
	segments := Split(path)
	for _, m := range matches {
		if m.Index < 0 || m.Index >= len(segments) {
			continue
		}
		segments[m.Index] = m.Name
	}
	return strings.Join(segments, "/")
}

// Template rewrites a concrete path into a route template and returns the
// matches it was built from.
func Template(path string, patterns PatternSet) (string, []Match) {
	matches := Extract(Split(path), patterns)
	return Replace(path, matches), matches
}

// IsToken reports whether a path segment is a parameter token like "{id}".
func IsToken(segment string) bool {
	return strings.HasPrefix(segment, "{")
}

// Tokens returns the parameter names in a template, unique and in order of
// first appearance, without braces.
func Tokens(template string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range tokenRegex.FindAllString(template, -1) {
		name := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
