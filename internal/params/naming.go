// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/api2spec/tape2spec/internal/util"
)

// ParamName derives the parameter token for a pattern in a naming context.
//
//	{issueId} + any         -> {issueId}
//	id + counter 2          -> {id2}
//	id + "bugs"             -> {bugId}
//	id + "path-name"        -> {pathNameId}
//	id + "" or "123"        -> {id}
func ParamName(p Pattern, ctx NamingContext) string {
	if p.Predefined() {
		return p.Name
	}

	if ctx.IsCounter {
		return "{" + p.Name + strconv.Itoa(ctx.Counter) + "}"
	}

	noun := stripDigits(ctx.Segment)
	if noun == "" {
		return "{" + p.Name + "}"
	}

	return "{" + util.Camelize(util.Singularize(noun)) + util.Capitalize(p.Name) + "}"
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}
