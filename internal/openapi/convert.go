// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/api2spec/tape2spec/pkg/types"
)

// formDataMediaType is added to consumes when body parameters become form fields.
const formDataMediaType = "multipart/form-data"

// ConvertToV3 converts a Swagger document to OpenAPI 3 and resolves its
// references. Operations with several body parameters, which Swagger 2.0
// does not allow, get one object body parameter instead. Operations mixing
// body and formData parameters get form fields only. doc is not modified.
func ConvertToV3(ctx context.Context, doc *types.Swagger) (*openapi3.T, error) {
	data, err := json.Marshal(compatible(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("failed to decode Swagger 2.0 document: %w", err)
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to OpenAPI 3: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	if err := loader.ResolveRefsIn(doc3, nil); err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}

	return doc3, nil
}

// Validate validates an OpenAPI 3 document.
func Validate(ctx context.Context, doc3 *openapi3.T) error {
	if err := doc3.Validate(ctx); err != nil {
		return fmt.Errorf("invalid OpenAPI 3 document: %w", err)
	}
	return nil
}

// compatible returns doc with every operation's parameters rewritten into a
// convertible form. Operations needing no change are shared with doc.
func compatible(doc *types.Swagger) *types.Swagger {
	result := *doc
	result.Paths = make(types.Paths, len(doc.Paths))

	for path, item := range doc.Paths {
		converted := make(types.PathItem, len(item))
		for method, op := range item {
			converted[method] = compatibleOperation(op)
		}
		result.Paths[path] = converted
	}

	return &result
}

func compatibleOperation(op *types.Operation) *types.Operation {
	bodyCount := 0
	hasFormData := false
	for _, p := range op.Parameters {
		switch p.In {
		case types.InBody:
			bodyCount++
		case types.InFormData:
			hasFormData = true
		}
	}

	if bodyCount == 0 || (bodyCount == 1 && !hasFormData) {
		return op
	}

	result := *op
	result.Parameters = make([]types.Parameter, 0, len(op.Parameters))

	if hasFormData {
		for _, p := range op.Parameters {
			if p.In == types.InBody {
				p = formDataFromBody(p)
			}
			result.Parameters = append(result.Parameters, p)
		}
		if !containsString(result.Consumes, formDataMediaType) {
			result.Consumes = append(append([]string(nil), op.Consumes...), formDataMediaType)
		}
		return &result
	}

	body := &types.Schema{
		Type:       types.TypeObject,
		Properties: map[string]*types.Schema{},
	}
	var rest []types.Parameter
	for _, p := range op.Parameters {
		if p.In != types.InBody {
			rest = append(rest, p)
			continue
		}
		body.Properties[p.Name] = schemaOfParam(p)
		if p.Required {
			body.Required = append(body.Required, p.Name)
		}
	}

	result.Parameters = append(result.Parameters, types.Parameter{
		In:       types.InBody,
		Name:     "body",
		Required: len(body.Required) > 0,
		Schema:   body,
	})
	result.Parameters = append(result.Parameters, rest...)
	return &result
}

// schemaOfParam returns the schema of a parameter, synthesized from its
// type when it has none.
func schemaOfParam(p types.Parameter) *types.Schema {
	if p.Schema != nil {
		return p.Schema
	}
	if p.Type == "" {
		return &types.Schema{Type: types.TypeString}
	}
	return &types.Schema{Type: p.Type, Format: p.Format, Items: p.Items}
}

// formDataFromBody turns a body parameter into a form field. A referenced
// or object schema cannot be a form field and degrades to string.
func formDataFromBody(p types.Parameter) types.Parameter {
	field := types.Parameter{
		In:          types.InFormData,
		Name:        p.Name,
		Description: p.Description,
		Required:    p.Required,
		Type:        types.TypeString,
	}

	if s := p.Schema; s != nil && s.Ref == "" && s.Type != "" && s.Type != types.TypeObject {
		field.Type = s.Type
		field.Format = s.Format
		field.Items = s.Items
	}
	if field.Type == types.TypeArray && field.Items == nil {
		field.Items = &types.Schema{Type: types.TypeString}
	}
	return field
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
