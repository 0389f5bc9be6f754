// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles the Swagger document from classified tapes and
// reads, writes, compares and converts it.
package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/api2spec/tape2spec/internal/classifier"
	"github.com/api2spec/tape2spec/internal/config"
	"github.com/api2spec/tape2spec/internal/schema"
	"github.com/api2spec/tape2spec/pkg/types"
)

// SwaggerVersion is the version written in every assembled document.
const SwaggerVersion = "2.0"

// Builder assembles the Swagger document from classified tapes.
type Builder struct {
	config     *config.Config
	inferencer *schema.Inferencer
}

// NewBuilder creates a new document builder with the given configuration.
func NewBuilder(cfg *config.Config, inf *schema.Inferencer) *Builder {
	if inf == nil {
		inf = schema.NewInferencer()
	}
	return &Builder{
		config:     cfg,
		inferencer: inf,
	}
}

// Build creates the document from records. Records are folded in source
// order, whatever order they are given in.
func (b *Builder) Build(records []classifier.Record) (*types.Swagger, error) {
	if err := validateGlobs(b.config.IgnoreDefinitions); err != nil {
		return nil, fmt.Errorf("invalid ignoreDefinitions: %w", err)
	}
	if err := validateGlobs(b.config.IgnorePaths); err != nil {
		return nil, fmt.Errorf("invalid ignorePaths: %w", err)
	}

	sorted := make([]classifier.Record, len(records))
	copy(sorted, records)
	classifier.SortRecords(sorted)

	doc := b.buildHeader()

	definitions := b.buildDefinitions(sorted)
	doc.Definitions = definitions.All()
	doc.Paths = b.buildPaths(sorted, definitions)

	return doc, nil
}

// buildHeader constructs the document header from configuration.
func (b *Builder) buildHeader() *types.Swagger {
	sc := b.config.Swagger
	doc := &types.Swagger{
		Swagger:     SwaggerVersion,
		Info:        b.buildInfo(),
		Host:        sc.Host,
		BasePath:    sc.BasePath,
		Schemes:     append([]string(nil), sc.Schemes...),
		Produces:    append([]string(nil), sc.Produces...),
		Paths:       types.Paths{},
		Definitions: map[string]*types.Schema{},
	}
	return doc
}

// buildInfo constructs the Info object from configuration.
func (b *Builder) buildInfo() types.Info {
	ic := b.config.Swagger.Info
	info := types.Info{
		Title:          ic.Title,
		Description:    ic.Description,
		TermsOfService: ic.TermsOfService,
		Version:        ic.Version,
	}

	if ic.Contact.Name != "" || ic.Contact.Email != "" || ic.Contact.URL != "" {
		info.Contact = &types.Contact{
			Name:  ic.Contact.Name,
			URL:   ic.Contact.URL,
			Email: ic.Contact.Email,
		}
	}

	if ic.License.Name != "" {
		info.License = &types.License{
			Name: ic.License.Name,
			URL:  ic.License.URL,
		}
	}

	return info
}

// buildDefinitions infers one definition per entity from the records whose
// route is not excluded by ignoreDefinitions.
func (b *Builder) buildDefinitions(records []classifier.Record) *schema.Registry {
	var kept []classifier.Record
	for _, rec := range records {
		if matchesRoute(b.config.IgnoreDefinitions, rec.Route) {
			continue
		}
		kept = append(kept, rec)
	}

	entities := make(map[string][]schema.Exchange)
	for _, group := range classifier.GroupByEntity(kept) {
		exchanges := make([]schema.Exchange, 0, len(group.Records))
		for _, rec := range group.Records {
			exchanges = append(exchanges, schema.Exchange{
				Request:  rec.Tape.Request.Data,
				Response: rec.Tape.Response.Data,
			})
		}
		entities[group.Key] = exchanges
	}

	registry := schema.NewRegistry()
	registry.Build(b.inferencer, entities)
	return registry
}

// buildPaths folds the records of every route into its operations. The
// root route and routes excluded by ignorePaths get none.
func (b *Builder) buildPaths(records []classifier.Record, definitions *schema.Registry) types.Paths {
	operations := NewOperationBuilder(b.inferencer, definitions)
	paths := types.Paths{}

	for _, group := range classifier.GroupByRoute(records) {
		if group.Key == classifier.RootRoute || matchesRoute(b.config.IgnorePaths, group.Key) {
			continue
		}

		item := types.PathItem{}
		for _, rec := range group.Records {
			item[rec.Method] = operations.Build(rec, item[rec.Method])
		}
		paths[group.Key] = item
	}

	return paths
}

// matchesRoute reports whether a route matches any glob, with or without
// its leading slash.
func matchesRoute(patterns []string, route string) bool {
	trimmed := strings.TrimPrefix(route, "/")
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, route); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, trimmed); ok {
			return true
		}
	}
	return false
}

func validateGlobs(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// SortedDefinitions returns the definition names of a document in sorted order.
func SortedDefinitions(doc *types.Swagger) []string {
	names := make([]string, 0, len(doc.Definitions))
	for name := range doc.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
