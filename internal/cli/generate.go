// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/tape2spec/internal/config"
	"github.com/api2spec/tape2spec/internal/generator"
	"github.com/api2spec/tape2spec/internal/openapi"
	"github.com/api2spec/tape2spec/pkg/types"
)

var (
	generateMerge  bool
	generateDryRun bool
	generateIgnore []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Swagger specification from recorded tapes",
	Long: `Generate a Swagger specification from the tapes directory.

The generate command scans the tape corpus, classifies every tape by route
and entity, infers definitions from request and response bodies, and writes
the assembled document to the output file.

Tapes that cannot be decoded are skipped with a warning.

Example:
  tape2spec generate                       # Generate from ./tapes
  tape2spec generate -t recordings         # Generate from another directory
  tape2spec generate --ignore 'admin/**'   # Skip some tapes
  tape2spec generate --merge               # Keep hand edits of the output file
  tape2spec generate --dry-run             # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateMerge, "merge", false, "keep hand-edited text of the existing output file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print output instead of writing to file")
	generateCmd.Flags().StringSliceVarP(&generateIgnore, "ignore", "i", nil, "glob patterns of tapes to skip")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Ignore = append(cfg.Ignore, generateIgnore...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen, result, err := generateDocument(ctx, cfg)
	if err != nil {
		return err
	}

	doc := result.Doc
	if generateMerge {
		doc, err = mergeExisting(cfg.Output, doc)
		if err != nil {
			return err
		}
	}

	if generateDryRun {
		data, err := gen.Render(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to render document: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	document, err := gen.Document(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to convert document: %w", err)
	}
	if err := openapi.NewWriter().WriteFile(document, cfg.Output, gen.Format()); err != nil {
		return err
	}

	printInfo("Wrote %s (%d paths, %d definitions, %d tapes)",
		cfg.Output, len(doc.Paths), len(doc.Definitions), len(result.Records))
	return nil
}

// generateDocument builds a generator for cfg and runs it once, reporting
// skipped tapes as warnings.
func generateDocument(ctx context.Context, cfg *config.Config) (*generator.Generator, *generator.Result, error) {
	gen, err := generator.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := gen.Generate(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate document: %w", err)
	}

	if result.Warnings != nil {
		printWarning("skipped %d tape(s)", len(result.Skipped))
		printVerbose("%v", result.Warnings)
	}
	printVerbose("Classified %d tapes", len(result.Records))
	if names := openapi.SortedDefinitions(result.Doc); len(names) > 0 {
		printVerbose("Definitions: %s", strings.Join(names, ", "))
	}

	return gen, result, nil
}

// mergeExisting merges doc into the Swagger document at path. A missing file
// or a file in another version leaves doc unchanged.
func mergeExisting(path string, doc *types.Swagger) (*types.Swagger, error) {
	existing, err := openapi.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		printVerbose("No existing file at %s, nothing to merge", path)
		return doc, nil
	case errors.Is(err, openapi.ErrNotSwagger2):
		printVerbose("%s is not a Swagger 2.0 document, nothing to merge", path)
		return doc, nil
	case err != nil:
		return nil, err
	}

	return openapi.MergeDefault(existing, doc)
}
