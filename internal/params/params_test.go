// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idPattern() PatternSet {
	return MustCompile(Definition{Name: "id", Source: "[0-9]+"})
}

func TestCompile(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		_, err := Compile(nil)
		assert.ErrorIs(t, err, ErrNoPatterns)
	})

	t.Run("invalid regex", func(t *testing.T) {
		_, err := Compile([]Definition{{Name: "id", Source: "[0-9"}})
		require.Error(t, err)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "id", cfgErr.Name)
		assert.NotNil(t, cfgErr.Unwrap())
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := Compile([]Definition{
			{Name: "id", Source: "[0-9]+"},
			{Name: "id", Source: "[a-f]+"},
		})
		assert.ErrorContains(t, err, "duplicate name")
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := Compile([]Definition{{Name: "id", Source: "  "}})
		assert.ErrorContains(t, err, "pattern is required")
	})

	t.Run("keeps declared order", func(t *testing.T) {
		set, err := Compile([]Definition{
			{Name: "uid", Source: `[a-f\d]{24}`},
			{Name: "id", Source: "[0-9]+"},
		})
		require.NoError(t, err)
		require.Len(t, set, 2)
		assert.Equal(t, "uid", set[0].Name)
		assert.Equal(t, "id", set[1].Name)
	})
}

func TestPattern_MatchesWholeSegment(t *testing.T) {
	set := idPattern()

	assert.True(t, set[0].Matches("34534"))
	assert.False(t, set[0].Matches("v1"))
	assert.False(t, set[0].Matches("12a"))
	assert.False(t, set[0].Matches(""))
}

func TestExtract(t *testing.T) {
	matches := Extract(Split("/path-name/34534/bugs/34534/56"), idPattern())
	require.Len(t, matches, 3)

	assert.Equal(t, Match{
		Index:       2,
		PatternName: "id",
		RawValue:    "34534",
		Context:     NamingContext{Segment: "path-name"},
		Name:        "{pathNameId}",
	}, matches[0])

	assert.Equal(t, "{bugId}", matches[1].Name)
	assert.Equal(t, NamingContext{Segment: "bugs"}, matches[1].Context)

	assert.Equal(t, Match{
		Index:       5,
		PatternName: "id",
		RawValue:    "56",
		Context:     NamingContext{Counter: 1, IsCounter: true},
		Name:        "{id1}",
	}, matches[2])
}

func TestExtract_FreshStatePerCall(t *testing.T) {
	set := idPattern()

	first := Extract(Split("/1/2"), set)
	second := Extract(Split("/1/2"), set)

	assert.Equal(t, first, second)
	assert.Equal(t, "{id1}", second[1].Name)
}

func TestParamName(t *testing.T) {
	id := Pattern{Name: "id"}

	tests := []struct {
		name     string
		pattern  Pattern
		ctx      NamingContext
		expected string
	}{
		{"predefined token", Pattern{Name: "{issueId}"}, NamingContext{Segment: "bugs"}, "{issueId}"},
		{"counter", id, NamingContext{Counter: 3, IsCounter: true}, "{id3}"},
		{"plural noun", id, NamingContext{Segment: "bugs"}, "{bugId}"},
		{"dashed noun", id, NamingContext{Segment: "path-name"}, "{pathNameId}"},
		{"empty segment", id, NamingContext{}, "{id}"},
		{"numeric segment", id, NamingContext{Segment: "2024"}, "{id}"},
		{"digits stripped", id, NamingContext{Segment: "v2users"}, "{vuserId}"},
		{"capitalized pattern name", Pattern{Name: "uid"}, NamingContext{Segment: "users"}, "{userUid}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParamName(tt.pattern, tt.ctx))
		})
	}
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns PatternSet
		expected string
	}{
		{
			name:     "infers names from previous segment",
			path:     "/path-name/34534/bugs/34534/56",
			patterns: idPattern(),
			expected: "/path-name/{pathNameId}/bugs/{bugId}/{id1}",
		},
		{
			name:     "increments repeated names",
			path:     "/1/3453/499/574/56",
			patterns: idPattern(),
			expected: "/{id}/{id1}/{id2}/{id3}/{id4}",
		},
		{
			name:     "predefined name replaces every occurrence",
			path:     "/path-name/NOW-5656/bugs/BNM-454",
			patterns: MustCompile(Definition{Name: "{issueId}", Source: "[A-Z]+-[0-9]+"}),
			expected: "/path-name/{issueId}/bugs/{issueId}",
		},
		{
			name:     "hex ids",
			path:     "/users/5f1d7a2b3c4d5e6f7a8b9c0d/posts",
			patterns: MustCompile(Definition{Name: "uid", Source: `[a-f\d]{24}`}),
			expected: "/users/{userUid}/posts",
		},
		{
			name:     "no matches",
			path:     "/users/me",
			patterns: idPattern(),
			expected: "/users/me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Template(tt.path, tt.patterns)
			assert.Equal(t, tt.expected, got)

			again, _ := Template(tt.path, tt.patterns)
			assert.Equal(t, got, again)
		})
	}
}

func TestTemplate_AmbiguousMatchLastWins(t *testing.T) {
	set := MustCompile(
		Definition{Name: "id", Source: "[0-9]+"},
		Definition{Name: "num", Source: "[0-9]{3}"},
	)

	got, matches := Template("/users/123", set)

	require.Len(t, matches, 2)
	assert.Equal(t, matches[0].Index, matches[1].Index)
	assert.Equal(t, "{userId}", matches[0].Name)
	assert.Equal(t, "{userNum}", matches[1].Name)
	assert.Equal(t, "/users/{userNum}", got)
}

func TestReplace_IgnoresOutOfRangeIndex(t *testing.T) {
	got := Replace("/a/b", []Match{{Index: 9, Name: "{x}"}, {Index: 1, Name: "{y}"}})
	assert.Equal(t, "/{y}/b", got)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"userId", "postId"}, Tokens("/users/{userId}/posts/{postId}/{userId}"))
	assert.Empty(t, Tokens("/users/me"))
}

func TestIsToken(t *testing.T) {
	assert.True(t, IsToken("{id}"))
	assert.False(t, IsToken("users"))
}
