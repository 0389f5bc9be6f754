// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"strings"

	"github.com/api2spec/tape2spec/pkg/types"
)

// StubPrefix marks generated text that has not been edited by hand.
const StubPrefix = "@todo"

// MergeOptions configures the merge behavior.
type MergeOptions struct {
	// PreserveInfo preserves info from the existing document.
	PreserveInfo bool

	// PreserveHost preserves host, basePath, schemes and produces from the
	// existing document.
	PreserveHost bool

	// PreserveDescriptions keeps hand-written summaries and descriptions of
	// operations, parameters and responses present in both documents.
	PreserveDescriptions bool

	// PreservePaths preserves paths missing from the generated document.
	PreservePaths bool

	// PreserveDefinitions preserves definitions missing from the generated document.
	PreserveDefinitions bool
}

// DefaultMergeOptions returns the default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		PreserveInfo:         true,
		PreserveHost:         true,
		PreserveDescriptions: true,
		PreservePaths:        false,
		PreserveDefinitions:  false,
	}
}

// Merger handles merging Swagger documents.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a new Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	return &Merger{
		options: options,
	}
}

// Merge combines an existing document with a generated one. The generated
// document wins everywhere the options do not say otherwise. Neither input
// is modified.
func (m *Merger) Merge(existing, generated *types.Swagger) (*types.Swagger, error) {
	if existing == nil {
		return generated, nil
	}

	result := *generated

	if m.options.PreserveInfo && existing.Info.Title != "" {
		result.Info = existing.Info
	}

	if m.options.PreserveHost {
		if existing.Host != "" {
			result.Host = existing.Host
		}
		if existing.BasePath != "" {
			result.BasePath = existing.BasePath
		}
		if len(existing.Schemes) > 0 {
			result.Schemes = existing.Schemes
		}
		if len(existing.Produces) > 0 {
			result.Produces = existing.Produces
		}
	}

	result.Paths = make(types.Paths, len(generated.Paths))
	for path, item := range generated.Paths {
		merged := make(types.PathItem, len(item))
		for method, op := range item {
			if m.options.PreserveDescriptions {
				op = mergeOperation(existing.Paths[path][method], op)
			}
			merged[method] = op
		}
		result.Paths[path] = merged
	}
	if m.options.PreservePaths {
		for path, item := range existing.Paths {
			if _, ok := result.Paths[path]; !ok {
				result.Paths[path] = item
			}
		}
	}

	result.Definitions = make(map[string]*types.Schema, len(generated.Definitions))
	for name, def := range generated.Definitions {
		result.Definitions[name] = def
	}
	if m.options.PreserveDefinitions {
		for name, def := range existing.Definitions {
			if _, ok := result.Definitions[name]; !ok {
				result.Definitions[name] = def
			}
		}
	}

	return &result, nil
}

// mergeOperation returns a copy of generated carrying the edited texts of existing.
func mergeOperation(existing, generated *types.Operation) *types.Operation {
	if existing == nil || generated == nil {
		return generated
	}

	op := *generated
	op.Summary = keepEdited(existing.Summary, generated.Summary)
	op.Description = keepEdited(existing.Description, generated.Description)

	if generated.Parameters != nil {
		op.Parameters = make([]types.Parameter, len(generated.Parameters))
		for i, p := range generated.Parameters {
			for _, e := range existing.Parameters {
				if e.In == p.In && e.Name == p.Name {
					p.Description = keepEdited(e.Description, p.Description)
					break
				}
			}
			op.Parameters[i] = p
		}
	}

	op.Responses = make(map[string]*types.Response, len(generated.Responses))
	for code, r := range generated.Responses {
		copied := *r
		if e, ok := existing.Responses[code]; ok && e != nil {
			copied.Description = keepEdited(e.Description, r.Description)
		}
		op.Responses[code] = &copied
	}

	return &op
}

// keepEdited returns existing unless it is empty or still a stub.
func keepEdited(existing, generated string) string {
	if existing == "" || strings.HasPrefix(existing, StubPrefix) {
		return generated
	}
	return existing
}

// MergeDefault merges two documents using default options.
func MergeDefault(existing, generated *types.Swagger) (*types.Swagger, error) {
	merger := NewMerger(DefaultMergeOptions())
	return merger.Merge(existing, generated)
}
