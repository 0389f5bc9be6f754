// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"regexp"
	"sort"
	"strings"

	"github.com/api2spec/tape2spec/pkg/types"
)

// Modifier rewrites an inferred property. It receives the property computed
// so far, the example value and the property name. Returning nil, or a
// property without a type, leaves the property unchanged.
type Modifier func(prop *types.Schema, value interface{}, name string) *types.Schema

// kindRules holds one inference rule per value kind.
var kindRules = map[ValueKind]func(prop *types.Schema, value interface{}){
	KindNull:    func(p *types.Schema, _ interface{}) { p.Type = types.TypeString },
	KindBoolean: func(p *types.Schema, _ interface{}) { p.Type = types.TypeBoolean },
	KindInteger: func(p *types.Schema, _ interface{}) { p.Type = types.TypeInteger },
	KindNumber: func(p *types.Schema, _ interface{}) {
		p.Type = types.TypeNumber
		p.Format = "float"
	},
	KindString: func(p *types.Schema, _ interface{}) { p.Type = types.TypeString },
	KindDate: func(p *types.Schema, _ interface{}) {
		p.Type = types.TypeString
		p.Format = "date"
	},
	KindRegexp: func(p *types.Schema, v interface{}) {
		p.Type = types.TypeString
		if re, ok := v.(*regexp.Regexp); ok && re != nil {
			p.Pattern = re.String()
		}
	},
	KindBytes: func(p *types.Schema, _ interface{}) {
		p.Type = types.TypeString
		p.Format = "byte"
	},
	KindArray:  func(p *types.Schema, _ interface{}) { p.Type = types.TypeArray },
	KindObject: func(p *types.Schema, _ interface{}) { p.Type = types.TypeObject },
}

// Inferencer turns example payloads into schemas.
type Inferencer struct {
	modifiers []Modifier
}

// NewInferencer creates an inferencer applying the modifiers, in order,
// after the built-in inference of every property.
func NewInferencer(modifiers ...Modifier) *Inferencer {
	return &Inferencer{modifiers: modifiers}
}

// Starter returns the empty object schema every translation and merge starts from.
func Starter() *types.Schema {
	return &types.Schema{
		Type:       types.TypeObject,
		Properties: map[string]*types.Schema{},
		Required:   []string{},
	}
}

// Translate infers an object schema from an example. An array example is
// represented by its first element. When requireAll is set every top-level
// key is required. An example that is not an object contributes no properties.
func (i *Inferencer) Translate(example interface{}, requireAll bool) *types.Schema {
	schema := Starter()

	data := objectOf(representative(example))
	if data == nil {
		return schema
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if requireAll {
		schema.Required = append(schema.Required, keys...)
	}

	for _, k := range keys {
		schema.Properties[k] = i.InferProperty(data[k], k)
	}
	return schema
}

// InferProperty infers the schema of a single property.
func (i *Inferencer) InferProperty(value interface{}, name string) *types.Schema {
	prop := &types.Schema{}

	if strings.HasPrefix(name, "is_") {
		prop.Type = types.TypeBoolean
	} else {
		kind := KindOf(value)
		if rule, ok := kindRules[kind]; ok {
			rule(prop, value)
		}
		if name == "password" && prop.Format == "" {
			prop.Format = "password"
		}
	}

	if !types.IsPrimitive(prop.Type) {
		prop.Type = types.TypeString
	}

	return i.modify(prop, value, name)
}

func (i *Inferencer) modify(prop *types.Schema, value interface{}, name string) *types.Schema {
	for _, fn := range i.modifiers {
		if fn == nil {
			continue
		}
		modified := fn(clone(prop), value, name)
		if modified == nil || modified.Type == "" {
			continue
		}
		prop = modified
	}
	return prop
}

func clone(s *types.Schema) *types.Schema {
	if s == nil {
		return nil
	}
	c := *s
	if s.Extensions != nil {
		c.Extensions = make(map[string]interface{}, len(s.Extensions))
		for k, v := range s.Extensions {
			c.Extensions[k] = v
		}
	}
	return &c
}
