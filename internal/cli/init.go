// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/tape2spec/internal/config"
)

const initConfigFile = "tape2spec.yaml"

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new tape2spec configuration file",
	Long: `Initialize a new tape2spec configuration file in the current directory.

This command creates a tape2spec.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Detects the tapes directory (tapes, recordings, fixtures)
  - Infers API title from the go.mod module name
  - Adds sample param patterns for numeric and object ids

Example:
  tape2spec init                         # Create config
  tape2spec init --force                 # Overwrite existing config
  tape2spec init --interactive           # Interactive mode with prompts
  tape2spec init --title "My API"        # Set custom API title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for Swagger info")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for Swagger info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for Swagger info")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := initConfigFile
	if cfgFile != "" {
		configFile = cfgFile
	}

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()
	cfg.Params = []config.ParamConfig{
		{Name: "id", Pattern: `[0-9]+`},
		{Name: "uid", Pattern: `[a-f\d]{24}`},
	}

	if tapes != "" {
		cfg.Tapes = tapes
	} else {
		cfg.Tapes = detectTapesDir(projectRoot)
		printVerbose("Tapes directory: %s", cfg.Tapes)
	}
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	projectInfo := detectProjectInfo(projectRoot)

	if initTitle != "" {
		cfg.Swagger.Info.Title = initTitle
	} else if projectInfo.Title != "" {
		cfg.Swagger.Info.Title = projectInfo.Title
	}

	if initVersion != "" {
		cfg.Swagger.Info.Version = initVersion
	}

	if initDescription != "" {
		cfg.Swagger.Info.Description = initDescription
	}

	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFile, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Tapes: %s", cfg.Tapes)
	printVerbose("Output: %s", cfg.Output)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title  string
	Module string
}

var titleCaser = cases.Title(language.English)

// detectProjectInfo detects project information from go.mod.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	file, err := os.Open(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return info
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		info.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))

		// "github.com/user/my-api" -> "My Api API"
		parts := strings.Split(info.Module, "/")
		name := parts[len(parts)-1]
		name = strings.ReplaceAll(name, "-", " ")
		name = strings.ReplaceAll(name, "_", " ")
		info.Title = titleCaser.String(name) + " API"
		break
	}

	return info
}

// tapesDirCandidates are the directories tried, in order, for the tape corpus.
var tapesDirCandidates = []string{
	"tapes",
	"recordings",
	"fixtures",
	"testdata/tapes",
}

// detectTapesDir returns the first existing tapes directory candidate,
// or "tapes" when none exists.
func detectTapesDir(projectRoot string) string {
	for _, candidate := range tapesDirCandidates {
		fullPath := filepath.Join(projectRoot, filepath.FromSlash(candidate))
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			return candidate
		}
	}
	return "tapes"
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	prompt := func(label string, value *string) {
		fmt.Fprintf(out, "%s [%s]: ", label, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	prompt("API Title", &cfg.Swagger.Info.Title)
	prompt("API Version", &cfg.Swagger.Info.Version)
	prompt("API Description", &cfg.Swagger.Info.Description)
	prompt("API Host", &cfg.Swagger.Host)
	prompt("Base path", &cfg.Swagger.BasePath)
	prompt("Tapes directory", &cfg.Tapes)
	prompt("Output file", &cfg.Output)
	prompt("Output format (yaml/json)", &cfg.Format)

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# tape2spec configuration file
#
# params are tried in order against every path segment of a tape's
# directory; a matching segment becomes a path parameter.

`
	return header + string(data), nil
}
