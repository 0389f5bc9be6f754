// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package tape

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordedPost = `{
  "schema": "1",
  "req": {
    "method": "POST",
    "url": "/users?notify=true",
    "headers": {"content-type": "application/json; charset=utf-8"},
    "body": "{\"name\":\"Bobby\",\"age\":27}"
  },
  "res": {
    "statusCode": 201,
    "headers": {"content-type": "application/json"},
    "body": "{\"id\":1,\"name\":\"Bobby\"}"
  }
}`

func TestDecode_FillsDataFromBodies(t *testing.T) {
	tp, err := Decode("users/POST_201.json", []byte(recordedPost))
	require.NoError(t, err)

	assert.Equal(t, "users/POST_201.json", tp.Source)
	assert.Equal(t, "POST", tp.Request.Method)
	assert.Equal(t, "application/json", tp.Request.ContentType())
	assert.Equal(t, "notify=true", tp.Request.Query)
	assert.Equal(t, map[string]interface{}{"notify": "true"}, tp.Request.Params)
	assert.Equal(t, map[string]interface{}{"name": "Bobby", "age": float64(27)}, tp.Request.Data)
	assert.Equal(t, map[string]interface{}{"id": float64(1), "name": "Bobby"}, tp.Response.Data)
	assert.Equal(t, 201, tp.Response.StatusCode)
}

func TestDecode_KeepsRecordedData(t *testing.T) {
	content := `{"req":{"method":"GET","url":"/a","data":{"q":"x"},"params":{"page":"2"}},
		"res":{"statusCode":200,"body":"ignored","data":[{"id":1}]}}`

	tp, err := Decode("a/GET_200.json", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"q": "x"}, tp.Request.Data)
	assert.Equal(t, map[string]interface{}{"page": "2"}, tp.Request.Params)
	assert.Equal(t, []interface{}{map[string]interface{}{"id": float64(1)}}, tp.Response.Data)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode("broken/GET_200.json", []byte("{not json"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "broken/GET_200.json", decodeErr.Source)
	assert.Contains(t, err.Error(), "broken/GET_200.json")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "GET_200.json")
	require.NoError(t, os.WriteFile(path, []byte(recordedPost), 0o644))

	tp, err := ReadFile(path, "users/GET_200.json")
	require.NoError(t, err)
	assert.Equal(t, "users/GET_200.json", tp.Source)

	_, err = ReadFile(filepath.Join(dir, "missing.json"), "missing.json")
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestBodyToData(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		contentType string
		expected    interface{}
	}{
		{"nil body", nil, "application/json", map[string]interface{}{}},
		{"empty body", "", "application/json", map[string]interface{}{}},
		{"json object", `{"a":1}`, "application/json", map[string]interface{}{"a": float64(1)}},
		{"json array", `[1,2]`, "application/json", []interface{}{float64(1), float64(2)}},
		{"malformed json stays opaque", `{"a":`, "application/json", `{"a":`},
		{"form body", "a=1&b=x&b=y", "application/x-www-form-urlencoded", map[string]interface{}{
			"a": "1",
			"b": []interface{}{"x", "y"},
		}},
		{"plain text", "hello", "text/plain", "hello"},
		{"already decoded", map[string]interface{}{"a": true}, "application/json", map[string]interface{}{"a": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BodyToData(tt.body, tt.contentType))
		})
	}
}

func TestQueryToParams(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"page": "1", "tag": []interface{}{"a", "b"}}, QueryToParams("page=1&tag=a&tag=b"))
	assert.Empty(t, QueryToParams(""))
}

func TestLocation(t *testing.T) {
	tp, err := Decode("", []byte(recordedPost))
	require.NoError(t, err)
	assert.Equal(t, "users/POST_notify=true_201.json", Location(tp))

	tp.Request.URL = "/"
	tp.Request.Query = ""
	assert.Equal(t, "POST_201.json", Location(tp))
}
