// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"encoding/json"
	"sort"
)

// Primitive schema types. Inferred property types are always one of these.
const (
	TypeArray   = "array"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeObject  = "object"
	TypeString  = "string"
)

// Primitives lists the accepted property types.
var Primitives = []string{TypeArray, TypeBoolean, TypeInteger, TypeNumber, TypeObject, TypeString}

// IsPrimitive reports whether t is one of the accepted property types.
func IsPrimitive(t string) bool {
	for _, p := range Primitives {
		if p == t {
			return true
		}
	}
	return false
}

// DefinitionsPrefix is the JSON pointer prefix of entity definitions.
const DefinitionsPrefix = "#/definitions/"

// Schema represents a Swagger 2.0 schema object.
//
// It is used both for a single property (type, format, pattern) and for an
// entity definition (type object, properties, required).
type Schema struct {
	// Ref is a reference to an entity definition ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (array, boolean, integer, number, object, string)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (float, date, byte, password, ...)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Pattern is a regex pattern for string validation
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Items is the schema for array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties maps property names to their schemas
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a sorted list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Extensions holds extra keys set by property modifiers (e.g. "x-nullable")
	Extensions map[string]interface{} `json:"-" yaml:",inline"`
}

// RefTo returns a schema referencing the named entity definition.
func RefTo(entity string) *Schema {
	return &Schema{Ref: DefinitionsPrefix + entity}
}

// ArrayOf returns an array schema whose items are the given schema.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// PropertyNames returns the property names in sorted order.
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// schemaFields mirrors Schema without its methods so the standard encoder can be reused.
type schemaFields Schema

var schemaKeys = map[string]bool{
	"$ref":       true,
	"type":       true,
	"format":     true,
	"pattern":    true,
	"items":      true,
	"properties": true,
	"required":   true,
}

// MarshalJSON flattens Extensions next to the regular schema keys.
func (s Schema) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(schemaFields(s))
	if err != nil || len(s.Extensions) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Extensions {
		if schemaKeys[k] {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// UnmarshalJSON collects unknown keys into Extensions.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var fields schemaFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, raw := range all {
		if schemaKeys[k] {
			continue
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if fields.Extensions == nil {
			fields.Extensions = make(map[string]interface{})
		}
		fields.Extensions[k] = v
	}

	*s = Schema(fields)
	return nil
}
