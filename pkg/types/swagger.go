// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides core data structures for specification inference.
package types

import "sort"

// Swagger represents a complete Swagger 2.0 (OpenAPI 2.0) specification document.
type Swagger struct {
	// Swagger is the specification version, always "2.0"
	Swagger string `json:"swagger" yaml:"swagger"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Host is the host (name or ip) serving the API
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// BasePath is the base path on which the API is served
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Schemes is the transfer protocol of the API
	Schemes []string `json:"schemes,omitempty" yaml:"schemes,omitempty"`

	// Produces is a list of MIME types the API can produce
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Paths holds the available paths and operations, keyed by route template
	Paths Paths `json:"paths" yaml:"paths"`

	// Definitions holds one inferred schema per entity
	Definitions map[string]*Schema `json:"definitions" yaml:"definitions"`
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TermsOfService is a URL to the Terms of Service
	TermsOfService string `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`

	// Contact provides contact information
	Contact *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`

	// License provides license information
	License *License `json:"license,omitempty" yaml:"license,omitempty"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Paths maps a route template to its operations.
type Paths map[string]PathItem

// PathItem maps a lowercase HTTP method to its operation.
type PathItem map[string]*Operation

// Methods returns the methods of the path item in sorted order.
func (p PathItem) Methods() []string {
	methods := make([]string, 0, len(p))
	for m := range p {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Operation represents a single API operation on a path.
type Operation struct {
	// Summary is a brief summary
	Summary string `json:"summary" yaml:"summary"`

	// Description is a detailed description
	Description string `json:"description" yaml:"description"`

	// Consumes is the list of MIME types the operation consumes
	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`

	// Parameters is a list of parameters
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Responses maps status codes (and "default") to responses
	Responses map[string]*Response `json:"responses" yaml:"responses"`

	// Tags is a list of tags, at most the entity name
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InBody     = "body"
	InFormData = "formData"
)

// Parameter represents a Swagger 2.0 parameter.
type Parameter struct {
	// In is the location of the parameter (path, query, body, formData)
	In string `json:"in" yaml:"in"`

	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// Description is a brief description of the parameter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required" yaml:"required"`

	// Type is the primitive type for non-body parameters
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the type format for non-body parameters
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Items describes the elements of an array-typed non-body parameter
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Schema is the body schema for body parameters
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Response represents a Swagger 2.0 response.
type Response struct {
	// Description is a brief description of the response
	Description string `json:"description" yaml:"description"`

	// Schema is the response body schema
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// SortedPaths returns the route templates in sorted order.
func (p Paths) SortedPaths() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
