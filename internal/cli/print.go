// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/tape2spec/internal/openapi"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the Swagger specification to stdout",
	Long: `Print the Swagger specification to standard output.

If a file is provided, it will print that file, converted to --format when
one is given. Otherwise, it will generate and print the specification from
the tapes directory.

This is useful for piping the output to other tools or for quick inspection.

Example:
  tape2spec print                      # Generate and print
  tape2spec print swagger.yaml         # Print existing file
  tape2spec print -f json              # Print in JSON format
  tape2spec print | yq '.paths'        # Pipe to yq for processing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		filePath := args[0]
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
		if format == "" {
			_, err = out.Write(data)
			return err
		}

		raw, err := openapi.DecodeRaw(data)
		if err != nil {
			return err
		}
		rendered, err := openapi.NewWriter().Render(raw, format)
		if err != nil {
			return err
		}
		_, err = out.Write(rendered)
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen, result, err := generateDocument(ctx, cfg)
	if err != nil {
		return err
	}

	data, err := gen.Render(ctx, result.Doc)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	_, err = out.Write(data)
	return err
}
