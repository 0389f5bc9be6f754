// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package tape decodes recorded exchange files into normalized tapes.
package tape

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/api2spec/tape2spec/pkg/types"
)

// SchemaVersion is the recording format version written by the recorder.
const SchemaVersion = "1"

// DecodeError reports a tape file that could not be decoded.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode tape %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReadFile reads and decodes a tape file. The source is the corpus-relative
// path recorded on the tape.
func ReadFile(path, source string) (*types.Tape, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	return Decode(source, content)
}

// Decode decodes tape content and normalizes it: missing request and
// response data are decoded from the raw bodies, and missing query params
// are parsed from the raw query string.
func Decode(source string, content []byte) (*types.Tape, error) {
	var t types.Tape
	if err := json.Unmarshal(content, &t); err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	t.Source = source

	Normalize(&t)
	return &t, nil
}

// Normalize fills derived fields of a tape in place.
func Normalize(t *types.Tape) {
	req := &t.Request
	res := &t.Response

	if req.Query == "" {
		if u, err := url.Parse(req.URL); err == nil {
			req.Query = u.RawQuery
		}
	}

	if req.Params == nil && req.Query != "" {
		req.Params = QueryToParams(req.Query)
	}

	if isEmpty(req.Data) {
		contentType := req.ContentType()
		if contentType == "" {
			contentType = "json"
		}
		req.Data = BodyToData(req.Body, contentType)
	}

	if isEmpty(res.Data) {
		res.Data = BodyToData(res.Body, "json")
	}
}

// BodyToData decodes a raw body by content type. JSON bodies become generic
// values, form bodies become key/value maps. Anything else, including a body
// that fails to decode, is returned as is. An empty body yields an empty object.
func BodyToData(body interface{}, contentType string) interface{} {
	raw, ok := body.(string)
	if !ok {
		if body == nil {
			return map[string]interface{}{}
		}
		return body
	}
	if strings.TrimSpace(raw) == "" {
		return map[string]interface{}{}
	}

	switch {
	case strings.Contains(contentType, "json"):
		var data interface{}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return raw
		}
		return data
	case strings.Contains(contentType, "form"):
		values, err := url.ParseQuery(raw)
		if err != nil {
			return raw
		}
		return valuesToMap(values)
	}

	return raw
}

// QueryToParams parses a raw query string into a key/value map.
// Repeated keys keep every value as a list.
func QueryToParams(query string) map[string]interface{} {
	values, err := url.ParseQuery(query)
	if err != nil {
		return map[string]interface{}{}
	}
	return valuesToMap(values)
}

func valuesToMap(values url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
			continue
		}
		list := make([]interface{}, len(v))
		for i, s := range v {
			list[i] = s
		}
		out[k] = list
	}
	return out
}

// Location returns the corpus-relative path the recorder stores a tape
// under: the request path followed by METHOD[_query]_status.json.
func Location(t *types.Tape) string {
	dir := t.Request.URL
	if u, err := url.Parse(t.Request.URL); err == nil {
		dir = u.Path
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{t.Request.Method, t.Request.Query, strconv.Itoa(t.Response.StatusCode)} {
		if p != "" && p != "0" {
			parts = append(parts, p)
		}
	}
	file := strings.ReplaceAll(strings.Join(parts, "_")+".json", ":", "_")

	return strings.TrimPrefix(path.Join(dir, file), "/")
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(val) == 0
	case string:
		return val == ""
	}
	return false
}
