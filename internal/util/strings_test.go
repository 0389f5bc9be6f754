// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingularize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"regular plural", "bugs", "bug"},
		{"ies plural", "categories", "category"},
		{"already singular", "user", "user"},
		{"dashed word", "path-name", "path-name"},
		{"dashed plural", "ice-creams", "ice-cream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Singularize(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase", "id", "Id"},
		{"mixed case", "issueId", "Issueid"},
		{"single letter", "x", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Capitalize(tt.input))
		})
	}
}

func TestCamelize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single word", "bug", "bug"},
		{"dashed", "path-name", "pathName"},
		{"underscored", "user_profile", "userProfile"},
		{"keeps inner case", "some-fooBar", "someFooBar"},
		{"leading dash", "-moz-transform", "MozTransform"},
		{"repeated separators", "a--b", "aB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camelize(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"simple", "user", "User"},
		{"dashed", "ice-cream", "IceCream"},
		{"underscored", "user_profile", "UserProfile"},
		{"dotted", "v1.users", "V1Users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}
