// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for tape2spec.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/tape2spec/internal/config"
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	tapes   string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tape2spec",
	Short: "Swagger specification generator for recorded HTTP tapes",
	Long: `tape2spec infers a Swagger 2.0 (or OpenAPI 3) specification from a
directory of recorded HTTP request/response tapes.

Each tape is a JSON file whose directory mirrors the request path. Path
segments matching a configured param pattern become path parameters, and
response bodies are merged into named definitions.

Example:
  tape2spec generate                   # Generate swagger.yaml from ./tapes
  tape2spec init                       # Write a starter tape2spec.yaml
  tape2spec check --ci                 # Fail when swagger.yaml is out of date
  tape2spec watch                      # Regenerate whenever a tape changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: tape2spec.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (default: swagger.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: yaml, json (default: yaml)")
	rootCmd.PersistentFlags().StringVarP(&tapes, "tapes", "t", "", "tapes directory (default: tapes)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// GetOutput returns the output file path from the flag.
func GetOutput() string {
	return output
}

// GetFormat returns the output format from the flag.
func GetFormat() string {
	return format
}

// GetTapes returns the tapes directory from the flag.
func GetTapes() string {
	return tapes
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// loadConfig loads the configuration file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if tapes != "" {
		cfg.Tapes = tapes
	}

	printVerbose("Configuration:")
	printVerbose("  Tapes: %s", cfg.Tapes)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Version: %s", cfg.Swagger.Version)

	return cfg, nil
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(rootCmd.OutOrStdout(), format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(rootCmd.OutOrStdout(), format+"\n", args...)
	}
}

// printWarning prints a warning that quiet mode does not suppress.
func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: "+format+"\n", args...)
}
