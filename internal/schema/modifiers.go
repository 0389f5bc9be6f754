// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/api2spec/tape2spec/pkg/types"
)

var (
	uuidPattern     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// StringFormats adds uuid, date-time, email or uri formats to string
// properties whose example looks like one.
func StringFormats(prop *types.Schema, value interface{}, _ string) *types.Schema {
	s, ok := value.(string)
	if !ok || prop.Type != types.TypeString || prop.Format != "" {
		return nil
	}

	switch {
	case uuidPattern.MatchString(s):
		prop.Format = "uuid"
	case dateTimePattern.MatchString(s):
		prop.Format = "date-time"
	case emailPattern.MatchString(s):
		prop.Format = "email"
	case isURI(s):
		prop.Format = "uri"
	default:
		return nil
	}
	return prop
}

func isURI(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// NullableStrings marks properties observed as null with x-nullable.
func NullableStrings(prop *types.Schema, value interface{}, _ string) *types.Schema {
	if KindOf(value) != KindNull {
		return nil
	}
	if prop.Extensions == nil {
		prop.Extensions = make(map[string]interface{})
	}
	prop.Extensions["x-nullable"] = true
	return prop
}

var builtinModifiers = map[string]Modifier{
	"string-formats":   StringFormats,
	"nullable-strings": NullableStrings,
}

// ModifierNames returns the names of the built-in modifiers in sorted order.
func ModifierNames() []string {
	names := make([]string, 0, len(builtinModifiers))
	for name := range builtinModifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupModifiers resolves modifier names, keeping their order.
func LookupModifiers(names []string) ([]Modifier, error) {
	modifiers := make([]Modifier, 0, len(names))
	for _, name := range names {
		fn, ok := builtinModifiers[name]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q (available: %s)", name, strings.Join(ModifierNames(), ", "))
		}
		modifiers = append(modifiers, fn)
	}
	return modifiers, nil
}
