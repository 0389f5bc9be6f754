// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides word helpers used to name parameters and entities.
package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
	wordCaser  = cases.Title(language.Und, cases.NoLower)
)

// Singularize returns the singular form of an English noun.
// "bugs" becomes "bug"; words without a plural form are returned unchanged.
func Singularize(word string) string {
	if word == "" {
		return word
	}
	return inflection.Singular(word)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
// "id" becomes "Id", "issueID" becomes "Issueid".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return upperCaser.String(string(r)) + lowerCaser.String(s[size:])
}

// isSeparator reports whether r separates words in a path segment.
func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// Camelize joins dash, underscore or space separated words into camelCase,
// leaving the case of the first word untouched. "path-name" becomes "pathName".
// A leading separator capitalizes the first word as well.
func Camelize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	leading := isSeparator([]rune(s)[0])
	words := strings.FieldsFunc(s, isSeparator)

	var sb strings.Builder
	for i, w := range words {
		if i == 0 && !leading {
			sb.WriteString(w)
			continue
		}
		sb.WriteString(wordCaser.String(w))
	}
	return sb.String()
}

// Classify turns a noun into a type-like name. "ice-cream" becomes "IceCream".
func Classify(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return ' '
		}
		return r
	}, s)

	camel := Camelize(cleaned)
	if camel == "" {
		return camel
	}
	r, size := utf8.DecodeRuneInString(camel)
	return upperCaser.String(string(r)) + camel[size:]
}
