// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema infers entity definitions from example payloads.
package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"time"
)

// ValueKind is the closed set of example value shapes inference dispatches on.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindNull
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindDate
	KindRegexp
	KindBytes
	KindArray
	KindObject
)

var kindNames = map[ValueKind]string{
	KindUnknown: "unknown",
	KindNull:    "null",
	KindBoolean: "boolean",
	KindInteger: "integer",
	KindNumber:  "number",
	KindString:  "string",
	KindDate:    "date",
	KindRegexp:  "regexp",
	KindBytes:   "bytes",
	KindArray:   "array",
	KindObject:  "object",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// KindOf classifies an example value. Numbers are split by whether they are
// whole: 27 and 27.0 are integers, 1.01 is a number.
func KindOf(v interface{}) ValueKind {
	switch val := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case float64:
		return floatKind(val)
	case float32:
		return floatKind(float64(val))
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return KindInteger
		}
		f, err := val.Float64()
		if err != nil {
			return KindString
		}
		return floatKind(f)
	case time.Time, *time.Time:
		return KindDate
	case *regexp.Regexp:
		return KindRegexp
	case []byte:
		return KindBytes
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map, reflect.Struct:
		return KindObject
	case reflect.Ptr:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	}

	return KindUnknown
}

func floatKind(f float64) ValueKind {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return KindInteger
	}
	return KindNumber
}

// objectOf returns the example as a key/value map. Anything that is not an
// object, such as an opaque body string, yields nil.
func objectOf(v interface{}) map[string]interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return val
	case nil:
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}

	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

// representative returns the example inference should use: the first element
// of an array, or an empty object for an empty array.
func representative(v interface{}) interface{} {
	if KindOf(v) != KindArray {
		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Len() == 0 {
		return map[string]interface{}{}
	}
	return rv.Index(0).Interface()
}

// IsArray reports whether an example body is an array.
func IsArray(v interface{}) bool {
	return KindOf(v) == KindArray
}
