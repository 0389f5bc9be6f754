// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/api2spec/tape2spec/internal/classifier"
	"github.com/api2spec/tape2spec/internal/schema"
	"github.com/api2spec/tape2spec/pkg/types"
)

// OperationBuilder turns classified tapes into operation stubs.
type OperationBuilder struct {
	inferencer  *schema.Inferencer
	definitions *schema.Registry
}

// NewOperationBuilder creates an operation builder. Bodies of entities found
// in definitions are referenced; any other body is inferred with inf.
func NewOperationBuilder(inf *schema.Inferencer, definitions *schema.Registry) *OperationBuilder {
	if definitions == nil {
		definitions = schema.NewRegistry()
	}
	return &OperationBuilder{
		inferencer:  inf,
		definitions: definitions,
	}
}

// Build returns the operation for one tape. Parameters are computed from
// this tape alone. Responses extend those of previous, the operation built
// so far for the same route and method, which is left unmodified.
func (b *OperationBuilder) Build(rec classifier.Record, previous *types.Operation) *types.Operation {
	entity := rec.Entity
	method := rec.Method
	req := rec.Tape.Request
	res := rec.Tape.Response
	status := strconv.Itoa(res.StatusCode)
	hasEntity := entity != "" && b.definitions.Has(entity)

	op := &types.Operation{
		Summary:     fmt.Sprintf("@todo Summary stub for %s %s", strings.ToUpper(method), entity),
		Description: "@todo",
		Responses:   make(map[string]*types.Response),
	}

	if previous != nil {
		for code, r := range previous.Responses {
			copied := *r
			op.Responses[code] = &copied
		}
	}
	if _, ok := op.Responses["200"]; !ok {
		op.Responses["200"] = &types.Response{Description: fmt.Sprintf("@todo %s %s", MethodLabel(method), entity)}
	}
	if _, ok := op.Responses["default"]; !ok {
		op.Responses["default"] = &types.Response{Description: "Unexpected error"}
	}

	for _, name := range rec.Params {
		op.Parameters = append(op.Parameters, types.Parameter{
			In:          types.InPath,
			Name:        name,
			Description: "@todo ID of " + entity,
			Required:    true,
			Type:        types.TypeString,
		})
	}

	if method == "get" {
		op.Parameters = append(op.Parameters, b.adHocParams(req.Data, types.InQuery)...)
		op.Parameters = append(op.Parameters, b.adHocParams(req.Params, types.InQuery)...)
	} else {
		contentType := req.ContentType()
		if contentType != "" {
			op.Consumes = []string{contentType}
		}

		if !hasEntity {
			in := types.InBody
			if strings.Contains(strings.ToLower(contentType), "form") {
				in = types.InFormData
			}
			op.Parameters = append(op.Parameters, b.adHocParams(req.Data, in)...)
		} else if method != "delete" {
			op.Parameters = append(op.Parameters, types.Parameter{
				In:          types.InBody,
				Name:        "body",
				Description: "@todo Updated " + entity,
				Required:    true,
				Schema:      types.RefTo(entity),
			})
		}
	}
	op.Parameters = dedupeParams(op.Parameters)

	if entity != "" {
		op.Tags = []string{entity}
	}

	if _, ok := op.Responses[status]; !ok {
		op.Responses[status] = &types.Response{Description: StatusDescription(status)}
	}

	if hasEntity && method != "delete" && strings.HasPrefix(status, "2") {
		ref := types.RefTo(entity)
		if schema.IsArray(res.Data) {
			ref = types.ArrayOf(ref)
		}
		op.Responses[status].Schema = ref
	}

	if len(op.Parameters) == 0 {
		op.Parameters = nil
	}
	return op
}

// adHocParams infers one parameter per top-level key of data, in key order.
// Query parameters are optional; body and form parameters are required.
func (b *OperationBuilder) adHocParams(data interface{}, in string) []types.Parameter {
	fields, ok := data.(map[string]interface{})
	if !ok || len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]types.Parameter, 0, len(names))
	for _, name := range names {
		prop := b.inferencer.InferProperty(fields[name], name)
		param := types.Parameter{
			In:          in,
			Name:        name,
			Description: "@todo description for " + name,
			Required:    in != types.InQuery,
		}

		switch {
		case in == types.InBody:
			param.Schema = prop
		case prop.Type == types.TypeObject:
			param.Type = types.TypeString
		case prop.Type == types.TypeArray:
			param.Type = types.TypeArray
			param.Items = &types.Schema{Type: types.TypeString}
		default:
			param.Type = prop.Type
			param.Format = prop.Format
		}
		result = append(result, param)
	}
	return result
}

// dedupeParams keeps the first parameter of each location and name.
func dedupeParams(list []types.Parameter) []types.Parameter {
	seen := make(map[string]bool, len(list))
	result := list[:0]
	for _, p := range list {
		key := p.In + "\x00" + p.Name
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, p)
	}
	return result
}
