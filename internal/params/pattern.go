// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package params extracts named path parameters from concrete URL paths and
// rewrites those paths into route templates.
package params

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoPatterns is returned when a pattern set is compiled from no definitions.
var ErrNoPatterns = errors.New("no param patterns configured")

// ConfigurationError reports a pattern definition that cannot be used.
// It is fatal: no tape is processed once a pattern set fails to compile.
type ConfigurationError struct {
	Name    string
	Source  string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("param pattern %q (%s): %s: %v", e.Name, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("param pattern %q (%s): %s", e.Name, e.Source, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Definition is a named regular expression source, as found in configuration.
type Definition struct {
	Name   string
	Source string
}

// Pattern is a compiled, named path parameter shape.
//
// Regex always matches the whole segment: the source is anchored on compile.
type Pattern struct {
	Name  string
	Regex *regexp.Regexp
}

// Matches reports whether the whole segment matches the pattern.
func (p Pattern) Matches(segment string) bool {
	return p.Regex.MatchString(segment)
}

// Predefined reports whether the pattern name is already a parameter token
// such as "{issueId}", in which case it is used verbatim as the parameter name.
func (p Pattern) Predefined() bool {
	return strings.HasPrefix(p.Name, "{")
}

// PatternSet is an ordered list of patterns. Order is significant: patterns
// are tried in declared order for every segment.
type PatternSet []Pattern

// Compile compiles definitions, in order, into a pattern set.
// An empty definition list or an invalid expression is a configuration error.
func Compile(defs []Definition) (PatternSet, error) {
	if len(defs) == 0 {
		return nil, ErrNoPatterns
	}

	seen := make(map[string]bool, len(defs))
	set := make(PatternSet, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, &ConfigurationError{Name: def.Name, Source: def.Source, Message: "name is required"}
		}
		if seen[def.Name] {
			return nil, &ConfigurationError{Name: def.Name, Source: def.Source, Message: "duplicate name"}
		}
		seen[def.Name] = true

		if strings.TrimSpace(def.Source) == "" {
			return nil, &ConfigurationError{Name: def.Name, Source: def.Source, Message: "pattern is required"}
		}

		re, err := regexp.Compile(`^(?:` + def.Source + `)$`)
		if err != nil {
			return nil, &ConfigurationError{Name: def.Name, Source: def.Source, Message: "invalid regular expression", Err: err}
		}
		set = append(set, Pattern{Name: def.Name, Regex: re})
	}

	return set, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and fixed pattern sets.
func MustCompile(defs ...Definition) PatternSet {
	set, err := Compile(defs)
	if err != nil {
		panic(err)
	}
	return set
}
