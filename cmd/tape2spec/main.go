// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main is the entry point for the tape2spec CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/api2spec/tape2spec/internal/cli"
	"github.com/api2spec/tape2spec/internal/config"
	"github.com/api2spec/tape2spec/internal/params"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration errors and 1 for everything else.
func exitCode(err error) int {
	var cfgErr *params.ConfigurationError
	var valErrs config.ValidationErrors
	if errors.Is(err, params.ErrNoPatterns) || errors.As(err, &cfgErr) || errors.As(err, &valErrs) {
		return 2
	}
	return 1
}
