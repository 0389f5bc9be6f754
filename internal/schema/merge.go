// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sort"

	"github.com/api2spec/tape2spec/pkg/types"
)

// Merge folds schemas into one, starting from the empty object schema.
//
// A present type that differs from the accumulated one replaces it.
// Required names are unioned, deduplicated and sorted, and dropped when
// empty. Properties are merged shallowly: a later property with the same
// name replaces the earlier one entirely.
func Merge(schemas ...*types.Schema) *types.Schema {
	merged := Starter()
	seen := make(map[string]bool)

	for _, s := range schemas {
		if s == nil {
			continue
		}
		if s.Type != "" && s.Type != merged.Type {
			merged.Type = s.Type
		}
		for _, name := range s.Required {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			merged.Required = append(merged.Required, name)
		}
		for name, prop := range s.Properties {
			merged.Properties[name] = prop
		}
	}

	sort.Strings(merged.Required)
	if len(merged.Required) == 0 {
		merged.Required = nil
	}
	return merged
}

// Definition folds example exchanges into one entity definition. Each
// exchange contributes its response example, then its request example,
// every key of each being required.
func (i *Inferencer) Definition(exchanges []Exchange) *types.Schema {
	acc := Merge()
	for _, ex := range exchanges {
		acc = Merge(acc, i.Translate(ex.Response, true), i.Translate(ex.Request, true))
	}
	return acc
}

// Exchange is the pair of examples one tape contributes to a definition.
type Exchange struct {
	Request  interface{}
	Response interface{}
}
