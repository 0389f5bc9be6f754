// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/tape2spec/internal/params"
	"github.com/api2spec/tape2spec/pkg/types"
)

func testPatterns() params.PatternSet {
	return params.MustCompile(
		params.Definition{Name: "id", Source: "[0-9]+"},
		params.Definition{Name: "uid", Source: `[a-f\d]{24}`},
	)
}

func newTape(source, method string) *types.Tape {
	return &types.Tape{
		Source:   source,
		Request:  types.TapeRequest{Method: method},
		Response: types.TapeResponse{StatusCode: 200},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		source string
		route  string
		entity string
		method string
		params []string
	}{
		{
			name:   "collection",
			source: "users/GET_200.json",
			route:  "/users",
			entity: "User",
			method: "get",
		},
		{
			name:   "member",
			source: "users/42/PUT_200.json",
			route:  "/users/{userId}",
			entity: "User",
			method: "put",
			params: []string{"userId"},
		},
		{
			name:   "nested with query token",
			source: "users/42/ice-creams/7/GET_page=2_200.json",
			route:  "/users/{userId}/ice-creams/{iceCreamId}",
			entity: "IceCream",
			method: "get",
			params: []string{"userId", "iceCreamId"},
		},
		{
			name:   "hex id",
			source: "accounts/5f1d7a2b3c4d5e6f7a8b9c0d/DELETE_204.json",
			route:  "/accounts/{accountUid}",
			entity: "Account",
			method: "delete",
			params: []string{"accountUid"},
		},
		{
			name:   "anonymous route",
			source: "1/2/GET_200.json",
			route:  "/{id}/{id1}",
			entity: "",
			method: "get",
			params: []string{"id", "id1"},
		},
		{
			name:   "corpus root",
			source: "GET_200.json",
			route:  RootRoute,
			entity: "",
			method: "get",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Classify(newTape(tt.source, ""), testPatterns())

			assert.Equal(t, tt.source, rec.Source)
			assert.Equal(t, tt.route, rec.Route)
			assert.Equal(t, tt.entity, rec.Entity)
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.params, rec.Params)
		})
	}
}

func TestClassify_UsesRecorderLocationWithoutSource(t *testing.T) {
	tp := &types.Tape{
		Request:  types.TapeRequest{Method: "POST", URL: "/bugs"},
		Response: types.TapeResponse{StatusCode: 201},
	}

	rec := Classify(tp, testPatterns())
	assert.Equal(t, "bugs/POST_201.json", rec.Source)
	assert.Equal(t, "/bugs", rec.Route)
	assert.Equal(t, "Bug", rec.Entity)
	assert.Equal(t, "post", rec.Method)
}

func TestMethodFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		recorded string
		expected string
	}{
		{"GET_200.json", "", "get"},
		{"POST_201.json", "GET", "post"},
		{"delete_204.json", "", "delete"},
		{"PATCH.json", "", "patch"},
		{"index.json", "PUT", "put"},
		{"index.json", "", "get"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.recorded, func(t *testing.T) {
			assert.Equal(t, tt.expected, MethodFromFilename(tt.filename, tt.recorded))
		})
	}
}

func TestEntityFromTemplate(t *testing.T) {
	assert.Equal(t, "Bug", EntityFromTemplate("path-name/{pathNameId}/bugs/{bugId}/{id1}"))
	assert.Equal(t, "PathName", EntityFromTemplate("path-name/{pathNameId}"))
	assert.Equal(t, "Category", EntityFromTemplate("/categories"))
	assert.Equal(t, "", EntityFromTemplate("{id}/{id1}"))
	assert.Equal(t, "", EntityFromTemplate(""))
}

func TestClassifyAll_SortsBySource(t *testing.T) {
	tapes := []*types.Tape{
		newTape("users/GET_200.json", "GET"),
		newTape("bugs/GET_200.json", "GET"),
		newTape("users/42/GET_200.json", "GET"),
	}

	records := ClassifyAll(tapes, testPatterns())
	require.Len(t, records, 3)
	assert.Equal(t, "bugs/GET_200.json", records[0].Source)
	assert.Equal(t, "users/42/GET_200.json", records[1].Source)
	assert.Equal(t, "users/GET_200.json", records[2].Source)
}

func TestGroupByEntity(t *testing.T) {
	records := ClassifyAll([]*types.Tape{
		newTape("users/GET_200.json", "GET"),
		newTape("users/42/PUT_200.json", "PUT"),
		newTape("bugs/POST_201.json", "POST"),
		newTape("1/GET_200.json", "GET"),
	}, testPatterns())

	groups := GroupByEntity(records)
	require.Len(t, groups, 2)

	assert.Equal(t, "Bug", groups[0].Key)
	assert.Len(t, groups[0].Records, 1)

	assert.Equal(t, "User", groups[1].Key)
	require.Len(t, groups[1].Records, 2)
	assert.Equal(t, "users/42/PUT_200.json", groups[1].Records[0].Source)
	assert.Equal(t, "users/GET_200.json", groups[1].Records[1].Source)
}

func TestGroupByRoute(t *testing.T) {
	records := ClassifyAll([]*types.Tape{
		newTape("users/GET_200.json", "GET"),
		newTape("users/POST_201.json", "POST"),
		newTape("users/42/GET_200.json", "GET"),
		newTape("GET_200.json", "GET"),
	}, testPatterns())

	groups := GroupByRoute(records)
	require.Len(t, groups, 3)

	assert.Equal(t, RootRoute, groups[0].Key)
	assert.Equal(t, "/users", groups[1].Key)
	assert.Len(t, groups[1].Records, 2)
	assert.Equal(t, "/users/{userId}", groups[2].Key)
}
