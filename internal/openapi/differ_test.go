// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/tape2spec/pkg/types"
)

func simpleOp(summary string) *types.Operation {
	return &types.Operation{
		Summary:     summary,
		Description: "@todo",
		Responses: map[string]*types.Response{
			"200": {Description: "Successful"},
		},
	}
}

func docWith(paths types.Paths, definitions map[string]*types.Schema) *types.Swagger {
	return &types.Swagger{
		Swagger:     "2.0",
		Info:        types.Info{Title: "Test", Version: "1.0.0"},
		Paths:       paths,
		Definitions: definitions,
	}
}

func TestNewDiffer(t *testing.T) {
	assert.NotNil(t, NewDiffer())
}

func TestDiffer_Diff(t *testing.T) {
	userDef := &types.Schema{
		Type:       types.TypeObject,
		Properties: map[string]*types.Schema{"id": {Type: types.TypeInteger}},
		Required:   []string{"id"},
	}

	tests := []struct {
		name     string
		a, b     *types.Swagger
		paths    []PathChange
		schemas  []SchemaChange
		breaking bool
	}{
		{
			name: "no differences",
			a:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, map[string]*types.Schema{"User": userDef}),
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, map[string]*types.Schema{"User": userDef}),
		},
		{
			name: "added path",
			a:    docWith(types.Paths{}, nil),
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			paths: []PathChange{
				{Type: DiffTypeAdded, Path: "/users", Method: "GET", Description: "Added GET /users"},
			},
		},
		{
			name: "removed path",
			a:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			b:    docWith(types.Paths{}, nil),
			paths: []PathChange{
				{Type: DiffTypeRemoved, Path: "/users", Method: "GET", Description: "Removed GET /users"},
			},
			breaking: true,
		},
		{
			name: "added method",
			a:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List"), "post": simpleOp("Create")}}, nil),
			paths: []PathChange{
				{Type: DiffTypeAdded, Path: "/users", Method: "POST", Description: "Added POST /users"},
			},
		},
		{
			name: "removed method",
			a:    docWith(types.Paths{"/users": {"get": simpleOp("List"), "delete": simpleOp("Drop")}}, nil),
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			paths: []PathChange{
				{Type: DiffTypeRemoved, Path: "/users", Method: "DELETE", Description: "Removed DELETE /users"},
			},
			breaking: true,
		},
		{
			name: "modified operation",
			a:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List all")}}, nil),
			paths: []PathChange{
				{Type: DiffTypeModified, Path: "/users", Method: "GET", Description: "Modified GET /users"},
			},
		},
		{
			name: "added definition",
			a:    docWith(nil, nil),
			b:    docWith(nil, map[string]*types.Schema{"User": userDef}),
			schemas: []SchemaChange{
				{Type: DiffTypeAdded, Name: "User", Description: "Added definition: User"},
			},
		},
		{
			name: "removed definition",
			a:    docWith(nil, map[string]*types.Schema{"User": userDef}),
			b:    docWith(nil, nil),
			schemas: []SchemaChange{
				{Type: DiffTypeRemoved, Name: "User", Description: "Removed definition: User"},
			},
			breaking: true,
		},
		{
			name: "modified definition",
			a:    docWith(nil, map[string]*types.Schema{"User": userDef}),
			b: docWith(nil, map[string]*types.Schema{"User": {
				Type:       types.TypeObject,
				Properties: map[string]*types.Schema{"id": {Type: types.TypeString}},
				Required:   []string{"id"},
			}}),
			schemas: []SchemaChange{
				{Type: DiffTypeModified, Name: "User", Description: "Modified definition: User"},
			},
		},
		{
			name: "nil documents",
			a:    nil,
			b:    docWith(types.Paths{"/users": {"get": simpleOp("List")}}, nil),
			paths: []PathChange{
				{Type: DiffTypeAdded, Path: "/users", Method: "GET", Description: "Added GET /users"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewDiffer().Diff(tt.a, tt.b)
			require.NoError(t, err)

			wantPaths := tt.paths
			if wantPaths == nil {
				wantPaths = []PathChange{}
			}
			wantSchemas := tt.schemas
			if wantSchemas == nil {
				wantSchemas = []SchemaChange{}
			}

			assert.Equal(t, wantPaths, result.PathChanges)
			assert.Equal(t, wantSchemas, result.SchemaChanges)
			assert.Equal(t, tt.breaking, result.HasBreakingChanges)
			assert.Equal(t, len(tt.paths) == 0 && len(tt.schemas) == 0, result.IsEmpty())
		})
	}
}

func TestDiffer_Diff_IgnoresEmptyVersusNil(t *testing.T) {
	generated := docWith(types.Paths{"/users": {"get": simpleOp("List")}}, map[string]*types.Schema{
		"Empty": {Type: types.TypeObject, Properties: map[string]*types.Schema{}, Required: []string{}},
	})

	data, err := json.Marshal(generated)
	require.NoError(t, err)
	var reread types.Swagger
	require.NoError(t, json.Unmarshal(data, &reread))

	result, err := NewDiffer().Diff(&reread, generated)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, "No changes detected", result.Summary)
}

func TestDiffer_Diff_Summary(t *testing.T) {
	a := docWith(types.Paths{
		"/users":  {"get": simpleOp("List")},
		"/orders": {"get": simpleOp("Orders")},
	}, map[string]*types.Schema{"Order": {Type: types.TypeObject}})
	b := docWith(types.Paths{
		"/users": {"get": simpleOp("List users")},
		"/items": {"get": simpleOp("Items")},
	}, map[string]*types.Schema{"Item": {Type: types.TypeObject}})

	result, err := NewDiffer().Diff(a, b)
	require.NoError(t, err)

	assert.Equal(t, "1 path(s) added, 1 path(s) removed, 1 path(s) modified, 1 definition(s) added, 1 definition(s) removed [BREAKING CHANGES DETECTED]", result.Summary)
}

func TestFormatDiff_Empty(t *testing.T) {
	assert.Equal(t, "No differences found.", FormatDiff(&DiffResult{}))
}

func TestFormatDiff_WithChanges(t *testing.T) {
	result := &DiffResult{
		PathChanges: []PathChange{
			{Type: DiffTypeRemoved, Path: "/users", Method: "GET"},
			{Type: DiffTypeAdded, Path: "/items", Method: "POST"},
		},
		SchemaChanges: []SchemaChange{
			{Type: DiffTypeModified, Name: "User"},
		},
		Summary: "summary",
	}

	output := FormatDiff(result)

	assert.Contains(t, output, "=== Swagger Diff ===")
	assert.Contains(t, output, "+ POST /items\n- GET /users\n")
	assert.Contains(t, output, "--- Definition Changes ---\n~ User\n")
}
