// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/api2spec/tape2spec/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Output file matches the tapes
	ExitCodeDifference = 1 // Output file differs from the tapes
	ExitCodeCheckError = 2 // Error during analysis
)

var (
	checkStrict   bool
	checkIgnore   []string
	checkCI       bool
	checkValidate bool
)

// exit terminates the process in CI mode.
var exit = os.Exit

// errSpecDiffers is returned when the output file is out of date.
var errSpecDiffers = errors.New("spec differs from tapes")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if the output file matches the current tapes",
	Long: `Check validates that the Swagger output file matches the tapes.

This command generates a document from the tapes directory and compares it
with the existing output file. It's useful for CI pipelines to ensure the
document is always in sync with the recorded traffic.

Exit codes:
  0  Output file matches the tapes
  1  Output file differs from the tapes
  2  Error during analysis, or the generated document is invalid

Example:
  tape2spec check                       # Basic validation
  tape2spec check --strict=false        # Report differences without failing
  tape2spec check --ci                  # CI mode with appropriate exit codes
  tape2spec check --ignore '/internal/*' # Ignore some path differences
  tape2spec check --validate            # Also validate the generated document`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "path or definition patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
	checkCmd.Flags().BoolVar(&checkValidate, "validate", false, "validate the generated document as OpenAPI 3")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	code, err := checkSpec(ctx)
	if checkCI {
		if err != nil && !errors.Is(err, errSpecDiffers) {
			printError("%v", err)
		}
		exit(code)
	}
	return err
}

// checkSpec compares the output file with a freshly generated document and
// returns the exit code for the outcome.
func checkSpec(ctx context.Context) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ExitCodeCheckError, err
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printError("Spec file not found: %s", cfg.Output)
		printInfo("Run 'tape2spec generate' first to create the spec file")
		return ExitCodeDifference, fmt.Errorf("spec file not found: %s", cfg.Output)
	}

	existingRaw, err := openapi.ReadRaw(cfg.Output)
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to read existing spec: %w", err)
	}

	gen, result, err := generateDocument(ctx, cfg)
	if err != nil {
		return ExitCodeCheckError, err
	}

	if checkValidate {
		doc3, err := openapi.ConvertToV3(ctx, result.Doc)
		if err != nil {
			return ExitCodeCheckError, fmt.Errorf("failed to convert document: %w", err)
		}
		if err := openapi.Validate(ctx, doc3); err != nil {
			return ExitCodeCheckError, fmt.Errorf("generated document is invalid: %w", err)
		}
		printVerbose("Generated document is valid")
	}

	data, err := gen.Render(ctx, result.Doc)
	if err != nil {
		return ExitCodeCheckError, fmt.Errorf("failed to render document: %w", err)
	}
	generatedRaw, err := openapi.DecodeRaw(data)
	if err != nil {
		return ExitCodeCheckError, err
	}

	if !compareRaw(existingRaw, generatedRaw).Modified() {
		printInfo("Spec is in sync with tapes")
		return ExitCodeMatch, nil
	}

	existing, ok := swaggerFromRaw(existingRaw)
	if ok && !cfg.IsOpenAPI3() {
		diffResult, err := openapi.NewDiffer().Diff(existing, result.Doc)
		if err != nil {
			return ExitCodeCheckError, fmt.Errorf("failed to compare specs: %w", err)
		}

		if len(checkIgnore) > 0 && !diffResult.IsEmpty() {
			diffResult = applyIgnorePatterns(diffResult, checkIgnore)
			// header or formatting drift is invisible to the differ and
			// cannot be ignored
			rest := compareRaw(withoutIgnored(existingRaw, checkIgnore), withoutIgnored(generatedRaw, checkIgnore))
			if diffResult.IsEmpty() && !rest.Modified() {
				printInfo("Spec is in sync with tapes (ignoring %s)", strings.Join(checkIgnore, ", "))
				return ExitCodeMatch, nil
			}
		}

		printDiffResult(diffResult)
	} else {
		printInfo("Spec differs from tapes.")
		printInfo("Run 'tape2spec diff' to see the delta")
		printInfo("")
	}

	printInfo("Run 'tape2spec generate' to update the spec file")

	if checkStrict || checkCI {
		return ExitCodeDifference, errSpecDiffers
	}
	return ExitCodeMatch, nil
}

func printDiffResult(diffResult *openapi.DiffResult) {
	printInfo("Spec differs from tapes:\n")
	if diffResult.IsEmpty() {
		printInfo("Document header or formatting changed")
	} else {
		printInfo(diffResult.Summary)
	}
	printInfo("")

	if len(diffResult.PathChanges) > 0 {
		printInfo("Path changes:")
		for _, change := range diffResult.PathChanges {
			printInfo("  %s %s %s", getChangeSymbol(change.Type), change.Method, change.Path)
		}
		printInfo("")
	}

	if len(diffResult.SchemaChanges) > 0 {
		printInfo("Definition changes:")
		for _, change := range diffResult.SchemaChanges {
			printInfo("  %s %s", getChangeSymbol(change.Type), change.Name)
		}
		printInfo("")
	}

	if diffResult.HasBreakingChanges {
		printError("Breaking changes detected!")
	}
}

// applyIgnorePatterns filters out changes that match ignore patterns.
// withoutIgnored returns a shallow copy of a raw document without the paths
// and definitions matching patterns.
func withoutIgnored(raw map[string]interface{}, patterns []string) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, key := range []string{"paths", "definitions"} {
		section, ok := raw[key].(map[string]interface{})
		if !ok {
			continue
		}
		kept := make(map[string]interface{}, len(section))
		for name, v := range section {
			if !matchesAnyPattern(name, patterns) {
				kept[name] = v
			}
		}
		out[key] = kept
	}
	return out
}

func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{
		PathChanges:   make([]openapi.PathChange, 0),
		SchemaChanges: make([]openapi.SchemaChange, 0),
	}

	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	for _, change := range result.SchemaChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.SchemaChanges = append(filtered.SchemaChanges, change)
		}
	}

	// Recalculate breaking changes
	for _, change := range filtered.PathChanges {
		if change.Type == openapi.DiffTypeRemoved {
			filtered.HasBreakingChanges = true
			break
		}
	}
	if !filtered.HasBreakingChanges {
		for _, change := range filtered.SchemaChanges {
			if change.Type == openapi.DiffTypeRemoved {
				filtered.HasBreakingChanges = true
				break
			}
		}
	}

	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a path or definition name matches any of the
// given glob patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if s == pattern {
			return true
		}
		if matched, _ := doublestar.Match(pattern, s); matched {
			return true
		}
		// a trailing * also matches deeper paths: "/users/*" matches "/users/{userId}/posts"
		if strings.HasSuffix(pattern, "*") && strings.HasPrefix(s, strings.TrimRight(pattern, "*")) {
			return true
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}

	var parts []string
	pathAdded, pathRemoved, pathModified := 0, 0, 0
	for _, c := range result.PathChanges {
		switch c.Type {
		case openapi.DiffTypeAdded:
			pathAdded++
		case openapi.DiffTypeRemoved:
			pathRemoved++
		case openapi.DiffTypeModified:
			pathModified++
		}
	}

	defAdded, defRemoved, defModified := 0, 0, 0
	for _, c := range result.SchemaChanges {
		switch c.Type {
		case openapi.DiffTypeAdded:
			defAdded++
		case openapi.DiffTypeRemoved:
			defRemoved++
		case openapi.DiffTypeModified:
			defModified++
		}
	}

	if pathAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) added", pathAdded))
	}
	if pathRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) removed", pathRemoved))
	}
	if pathModified > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) modified", pathModified))
	}
	if defAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d definition(s) added", defAdded))
	}
	if defRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d definition(s) removed", defRemoved))
	}
	if defModified > 0 {
		parts = append(parts, fmt.Sprintf("%d definition(s) modified", defModified))
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}

	return summary
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t openapi.DiffType) string {
	switch t {
	case openapi.DiffTypeAdded:
		return "+"
	case openapi.DiffTypeRemoved:
		return "-"
	case openapi.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}
