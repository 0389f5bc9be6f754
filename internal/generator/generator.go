// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generator runs the whole pipeline: scan the tape corpus, decode
// and classify tapes, and assemble the document.
package generator

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/api2spec/tape2spec/internal/classifier"
	"github.com/api2spec/tape2spec/internal/config"
	"github.com/api2spec/tape2spec/internal/openapi"
	"github.com/api2spec/tape2spec/internal/params"
	"github.com/api2spec/tape2spec/internal/scanner"
	"github.com/api2spec/tape2spec/internal/schema"
	"github.com/api2spec/tape2spec/internal/tape"
	"github.com/api2spec/tape2spec/pkg/types"
)

// Generator turns a tape corpus into a document.
type Generator struct {
	config     *config.Config
	patterns   params.PatternSet
	inferencer *schema.Inferencer
	scanner    *scanner.Scanner
	writer     *openapi.Writer
}

// Result is the outcome of one run.
type Result struct {
	// Doc is the assembled Swagger document
	Doc *types.Swagger

	// Records are the classified tapes, in source order
	Records []classifier.Record

	// Skipped are the sources of tapes that could not be read or decoded
	Skipped []string

	// Warnings holds one error per skipped tape, or nil
	Warnings error
}

// New creates a generator. A pattern set that does not compile is returned
// as a *params.ConfigurationError before anything else is checked.
func New(cfg *config.Config) (*Generator, error) {
	patterns, err := params.Compile(cfg.PatternDefinitions())
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	modifiers, err := schema.LookupModifiers(cfg.Modifiers)
	if err != nil {
		return nil, err
	}

	return &Generator{
		config:     cfg,
		patterns:   patterns,
		inferencer: schema.NewInferencer(modifiers...),
		scanner: scanner.New(scanner.Config{
			BasePath:        cfg.Tapes,
			ExcludePatterns: cfg.Ignore,
			SkipRedirects:   cfg.SkipRedirects,
		}),
		writer: openapi.NewWriter(),
	}, nil
}

// Scanner returns the scanner used to discover tapes.
func (g *Generator) Scanner() *scanner.Scanner {
	return g.scanner
}

// Generate reads the corpus and assembles the Swagger document. A tape that
// cannot be read or decoded is skipped and reported in the result's warnings.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	files, err := g.scanner.Scan()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var warnings *multierror.Error

	tapes := make([]*types.Tape, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if file.Err != nil {
			warnings = multierror.Append(warnings, file.Err)
			result.Skipped = append(result.Skipped, file.Rel)
			continue
		}

		t, err := tape.Decode(file.Rel, file.Content)
		if err != nil {
			warnings = multierror.Append(warnings, err)
			result.Skipped = append(result.Skipped, file.Rel)
			continue
		}
		tapes = append(tapes, t)
	}

	result.Records = classifier.ClassifyAll(tapes, g.patterns)

	doc, err := openapi.NewBuilder(g.config, g.inferencer).Build(result.Records)
	if err != nil {
		return nil, err
	}
	result.Doc = doc
	result.Warnings = warnings.ErrorOrNil()

	return result, nil
}

// Document returns doc in the configured version: doc itself, or its
// OpenAPI 3 conversion.
func (g *Generator) Document(ctx context.Context, doc *types.Swagger) (interface{}, error) {
	if !g.config.IsOpenAPI3() {
		return doc, nil
	}
	return openapi.ConvertToV3(ctx, doc)
}

// Format returns the configured output format, inferred from the output
// path when unset.
func (g *Generator) Format() string {
	if g.config.Format != "" {
		return g.config.Format
	}
	return openapi.FormatFromPath(g.config.Output)
}

// Render returns doc as written to the output file.
func (g *Generator) Render(ctx context.Context, doc *types.Swagger) ([]byte, error) {
	document, err := g.Document(ctx, doc)
	if err != nil {
		return nil, err
	}
	return g.writer.Render(document, g.Format())
}

// Run generates and renders the document in one step.
func (g *Generator) Run(ctx context.Context) (*Result, []byte, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, nil, err
	}

	data, err := g.Render(ctx, result.Doc)
	if err != nil {
		return nil, nil, err
	}
	return result, data, nil
}
