// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	jd "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/api2spec/tape2spec/internal/openapi"
	"github.com/api2spec/tape2spec/pkg/types"
)

var (
	diffColor   bool
	diffSummary bool
)

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two Swagger specifications",
	Long: `Compare two Swagger specifications and show the differences.

If only one file is provided, it will be compared against the specification
generated from the tapes directory.

If no files are provided, the output file will be compared against what
would be generated from the tapes directory.

Swagger 2.0 documents get a summary of changed paths and definitions. The
full document delta is printed for every version.

Example:
  tape2spec diff                           # Compare output file vs generated
  tape2spec diff swagger.yaml              # Compare file vs generated
  tape2spec diff old.yaml new.yaml         # Compare two files
  tape2spec diff --summary                 # Only list changed paths and definitions
  tape2spec diff --color=false             # Plain delta`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffColor, "color", true, "enable colored output")
	diffCmd.Flags().BoolVar(&diffSummary, "summary", false, "only print the path and definition summary")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		left, right map[string]interface{}
		err         error
	)

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s", args[0], args[1])
		if left, err = openapi.ReadRaw(args[0]); err != nil {
			return err
		}
		if right, err = openapi.ReadRaw(args[1]); err != nil {
			return err
		}
	default:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		file := cfg.Output
		if len(args) == 1 {
			file = args[0]
		}
		printVerbose("Comparing %s against generated", file)

		if left, err = openapi.ReadRaw(file); err != nil {
			return err
		}
		gen, result, err := generateDocument(ctx, cfg)
		if err != nil {
			return err
		}
		data, err := gen.Render(ctx, result.Doc)
		if err != nil {
			return fmt.Errorf("failed to render document: %w", err)
		}
		if right, err = openapi.DecodeRaw(data); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	a, aOK := swaggerFromRaw(left)
	b, bOK := swaggerFromRaw(right)
	if aOK && bOK {
		result, err := openapi.NewDiffer().Diff(a, b)
		if err != nil {
			return fmt.Errorf("failed to compare documents: %w", err)
		}
		fmt.Fprintln(out, openapi.FormatDiff(result))
	} else {
		printVerbose("Not both Swagger 2.0 documents, no summary")
	}

	if diffSummary {
		return nil
	}

	delta, err := formatDelta(left, right, diffColor)
	if err != nil {
		return err
	}
	fmt.Fprint(out, delta)
	return nil
}

// compareRaw compares two documents decoded as generic JSON values.
func compareRaw(left, right map[string]interface{}) jd.Diff {
	return jd.New().CompareObjects(left, right)
}

// formatDelta renders the delta from left to right as an annotated document.
func formatDelta(left, right map[string]interface{}, coloring bool) (string, error) {
	diff := compareRaw(left, right)
	if !diff.Modified() {
		return "No differences found.\n", nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	s, err := f.Format(diff)
	if err != nil {
		return "", fmt.Errorf("failed to format delta: %w", err)
	}
	return s, nil
}

// swaggerFromRaw decodes a generic document as Swagger 2.0.
func swaggerFromRaw(raw map[string]interface{}) (*types.Swagger, bool) {
	if _, ok := raw["swagger"]; !ok {
		return nil, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var doc types.Swagger
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}
