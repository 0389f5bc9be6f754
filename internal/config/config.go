// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for tape2spec.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/api2spec/tape2spec/internal/params"
	"github.com/api2spec/tape2spec/internal/schema"
)

// Config represents the tape2spec configuration.
type Config struct {
	// Tapes is the directory holding the recorded tapes
	Tapes string `mapstructure:"tapes" yaml:"tapes" json:"tapes"`

	// Output is the output file path for the generated specification
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Params are the named path parameter patterns, tried in order
	Params []ParamConfig `mapstructure:"params" yaml:"params" json:"params"`

	// Ignore is a list of glob patterns of tape files to skip
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty" json:"ignore,omitempty"`

	// IgnoreDefinitions is a list of glob patterns of routes whose tapes
	// do not contribute to definitions
	IgnoreDefinitions []string `mapstructure:"ignoreDefinitions" yaml:"ignoreDefinitions,omitempty" json:"ignoreDefinitions,omitempty"`

	// IgnorePaths is a list of glob patterns of routes that get no operations
	IgnorePaths []string `mapstructure:"ignorePaths" yaml:"ignorePaths,omitempty" json:"ignorePaths,omitempty"`

	// SkipRedirects drops tapes recorded for 3xx responses
	SkipRedirects bool `mapstructure:"skipRedirects" yaml:"skipRedirects" json:"skipRedirects"`

	// Modifiers are the names of the property modifiers to apply, in order
	Modifiers []string `mapstructure:"modifiers" yaml:"modifiers,omitempty" json:"modifiers,omitempty"`

	// Swagger contains the document header configuration
	Swagger SwaggerConfig `mapstructure:"swagger" yaml:"swagger" json:"swagger"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// ParamConfig is a named path parameter pattern.
type ParamConfig struct {
	// Name is the pattern name, or a literal token such as "{issueId}"
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// Pattern is the regular expression a whole path segment must match
	Pattern string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
}

// SwaggerConfig contains document header configuration.
type SwaggerConfig struct {
	// Version is the document version to write (2.0, 3.0.3)
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// Info contains API metadata
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`

	// Host is the host serving the API
	Host string `mapstructure:"host" yaml:"host" json:"host"`

	// BasePath is the base path the API is served on
	BasePath string `mapstructure:"basePath" yaml:"basePath" json:"basePath"`

	// Schemes are the transfer protocols of the API
	Schemes []string `mapstructure:"schemes" yaml:"schemes" json:"schemes"`

	// Produces are the MIME types the API produces
	Produces []string `mapstructure:"produces" yaml:"produces" json:"produces"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	// Title is the API title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Description is the API description
	Description string `mapstructure:"description" yaml:"description" json:"description"`

	// Version is the API version
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// TermsOfService is the URL to terms of service
	TermsOfService string `mapstructure:"termsOfService" yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`

	// Contact contains contact information
	Contact ContactConfig `mapstructure:"contact" yaml:"contact,omitempty" json:"contact,omitempty"`

	// License contains license information
	License LicenseConfig `mapstructure:"license" yaml:"license,omitempty" json:"license,omitempty"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	// Name is the contact name
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`

	// URL is the contact URL
	URL string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`

	// Email is the contact email
	Email string `mapstructure:"email" yaml:"email,omitempty" json:"email,omitempty"`
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	// Name is the license name
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`

	// URL is the license URL
	URL string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// OnChange is the command to run after each regeneration
	OnChange string `mapstructure:"onChange" yaml:"onChange,omitempty" json:"onChange,omitempty"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"tape2spec.yaml",
	"tape2spec.json",
	".tape2spec.yaml",
	".tape2spec.json",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"yaml",
	"json",
}

// Document versions.
const (
	VersionSwagger2 = "2.0"
	VersionOpenAPI3 = "3.0.3"
)

// supportedVersions is the list of supported document versions.
var supportedVersions = []string{
	VersionSwagger2,
	VersionOpenAPI3,
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
// It has no param patterns: those must always be configured.
func Default() *Config {
	return &Config{
		Tapes:         "tapes",
		Output:        "swagger.yaml",
		Format:        "yaml",
		SkipRedirects: true,
		Swagger: SwaggerConfig{
			Version: VersionSwagger2,
			Info: InfoConfig{
				Title:       "@todo",
				Description: "@todo",
				Version:     "1.0.0",
			},
			Host:     "@todo",
			BasePath: "/@todo",
			Schemes:  []string{"https"},
			Produces: []string{"application/json"},
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. tape2spec.yaml
// 2. tape2spec.json
// 3. .tape2spec.yaml
// 4. .tape2spec.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	if configPath != "" {
		// Use the provided config path
		v.SetConfigFile(configPath)
	} else {
		// Search for config files in order
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			// Return default config if no file found
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("tapes", def.Tapes)
	v.SetDefault("output", def.Output)
	v.SetDefault("format", def.Format)
	v.SetDefault("skipRedirects", def.SkipRedirects)
	v.SetDefault("swagger.version", def.Swagger.Version)
	v.SetDefault("swagger.info.title", def.Swagger.Info.Title)
	v.SetDefault("swagger.info.description", def.Swagger.Info.Description)
	v.SetDefault("swagger.info.version", def.Swagger.Info.Version)
	v.SetDefault("swagger.host", def.Swagger.Host)
	v.SetDefault("swagger.basePath", def.Swagger.BasePath)
	v.SetDefault("swagger.schemes", def.Swagger.Schemes)
	v.SetDefault("swagger.produces", def.Swagger.Produces)
	v.SetDefault("watch.debounce", def.Watch.Debounce)
}

// PatternDefinitions returns the configured param patterns in declared order.
func (c *Config) PatternDefinitions() []params.Definition {
	defs := make([]params.Definition, 0, len(c.Params))
	for _, p := range c.Params {
		defs = append(defs, params.Definition{Name: p.Name, Source: p.Pattern})
	}
	return defs
}

// IsOpenAPI3 reports whether the document is converted to OpenAPI 3.
func (c *Config) IsOpenAPI3() bool {
	return c.Swagger.Version == VersionOpenAPI3
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate tapes directory
	if c.Tapes == "" {
		errs = append(errs, ValidationError{
			Field:   "tapes",
			Message: "tapes directory is required",
		})
	}

	// Validate param patterns
	if _, err := params.Compile(c.PatternDefinitions()); err != nil {
		message := err.Error()
		if errors.Is(err, params.ErrNoPatterns) {
			message = "at least one param pattern is required"
		}
		errs = append(errs, ValidationError{
			Field:   "params",
			Message: message,
		})
	}

	// Validate format
	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	// Validate document version
	if c.Swagger.Version != "" && !contains(supportedVersions, c.Swagger.Version) {
		errs = append(errs, ValidationError{
			Field:   "swagger.version",
			Message: fmt.Sprintf("unsupported version %q, must be one of: %s", c.Swagger.Version, strings.Join(supportedVersions, ", ")),
		})
	}

	// Validate modifiers
	if _, err := schema.LookupModifiers(c.Modifiers); err != nil {
		errs = append(errs, ValidationError{
			Field:   "modifiers",
			Message: err.Error(),
		})
	}

	// Validate watch debounce
	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	// Validate required fields
	if c.Swagger.Info.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "swagger.info.title",
			Message: "title is required",
		})
	}

	if c.Swagger.Info.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "swagger.info.version",
			Message: "version is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the path of the config file Load would pick, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
