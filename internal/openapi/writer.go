// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	jsonyaml "github.com/ghodss/yaml"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/tape2spec/pkg/types"
)

// ErrNotSwagger2 is returned when a file does not hold a Swagger 2.0 document.
var ErrNotSwagger2 = errors.New("not a Swagger 2.0 document")

// Writer handles writing documents to various outputs. A document is either
// a *types.Swagger or a converted *openapi3.T.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// WriteYAML writes a document as YAML to the given writer.
func (w *Writer) WriteYAML(doc interface{}, out io.Writer) error {
	if doc3, ok := doc.(*openapi3.T); ok {
		data, err := json.Marshal(doc3)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		data, err = jsonyaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a document as JSON to the given writer.
func (w *Writer) WriteJSON(doc interface{}, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Render returns the document in the given format ("yaml" or "json").
func (w *Writer) Render(doc interface{}, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		if err := w.WriteYAML(doc, &buf); err != nil {
			return nil, err
		}
	case "json":
		if err := w.WriteJSON(doc, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return buf.Bytes(), nil
}

// WriteFile writes a document to a file.
// The format is determined by the format parameter ("yaml" or "json").
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc interface{}, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	data, err := w.Render(doc, format)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FormatFromPath infers the output format from a file extension, defaulting to YAML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// ReadFile reads a Swagger 2.0 document from a YAML or JSON file.
func ReadFile(path string) (*types.Swagger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc types.Swagger
	if err := jsonyaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Swagger == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNotSwagger2)
	}

	return &doc, nil
}

// ReadRaw reads any YAML or JSON document as generic JSON values.
func ReadRaw(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeRaw(data)
}

// DecodeRaw decodes YAML or JSON content as generic JSON values.
func DecodeRaw(data []byte) (map[string]interface{}, error) {
	jsonData, err := jsonyaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}
