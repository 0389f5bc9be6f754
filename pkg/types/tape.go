// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Tape is one recorded HTTP request/response exchange.
type Tape struct {
	// Source is the corpus-relative, slash-separated file path of the tape
	// (e.g. "users/42/GET_200.json"). Tapes are ordered by Source.
	Source string `json:"-" yaml:"-"`

	// Schema is the recording format version
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Request is the recorded request
	Request TapeRequest `json:"req" yaml:"req"`

	// Response is the recorded response
	Response TapeResponse `json:"res" yaml:"res"`
}

// TapeRequest is the request half of a tape.
type TapeRequest struct {
	// Method is the recorded HTTP method
	Method string `json:"method" yaml:"method"`

	// URL is the raw request URL including the query string
	URL string `json:"url" yaml:"url"`

	// Headers are the request headers, keyed by lowercase name
	Headers Headers `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Body is the raw request body
	Body interface{} `json:"body,omitempty" yaml:"body,omitempty"`

	// Query is the raw query string
	Query string `json:"q,omitempty" yaml:"q,omitempty"`

	// Data is the decoded request body example
	Data interface{} `json:"data,omitempty" yaml:"data,omitempty"`

	// Params are the decoded query string values
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

// TapeResponse is the response half of a tape.
type TapeResponse struct {
	// StatusCode is the observed HTTP status code
	StatusCode int `json:"statusCode" yaml:"statusCode"`

	// Headers are the response headers, keyed by lowercase name
	Headers Headers `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Body is the raw response body
	Body interface{} `json:"body,omitempty" yaml:"body,omitempty"`

	// Data is the decoded response body example
	Data interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Headers holds recorded header values. A value is a string or a list of strings.
type Headers map[string]interface{}

// Get returns the first value of the named header. The lower-case key wins;
// otherwise keys matching case-insensitively are tried in sorted order.
func (h Headers) Get(name string) string {
	if v, ok := h[strings.ToLower(name)]; ok {
		return headerValue(v)
	}

	keys := make([]string, 0, len(h))
	for k := range h {
		if strings.EqualFold(k, name) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return headerValue(h[keys[0]])
}

func headerValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		if len(val) > 0 {
			return fmt.Sprint(val[0])
		}
		return ""
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// ContentType returns the media type of the request, without parameters.
func (r TapeRequest) ContentType() string {
	ct := r.Headers.Get("content-type")
	if i := strings.Index(ct, ";"); i != -1 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
