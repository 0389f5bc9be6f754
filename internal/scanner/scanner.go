// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the tape corpus directory (defaults to "tapes")
	BasePath string

	// IncludePatterns are glob patterns for tapes to include (defaults to "**/*.json")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for tapes to exclude (e.g., "admin/**")
	ExcludePatterns []string

	// SkipRedirects drops tapes recorded for 3xx responses
	SkipRedirects bool
}

// Scanner discovers tape files in a corpus directory.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	// Apply defaults
	if config.BasePath == "" {
		config.BasePath = "tapes"
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.json"}
	}

	return &Scanner{
		config: config,
	}
}

// BasePath returns the absolute corpus directory.
func (s *Scanner) BasePath() (string, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	return basePath, nil
}

// Scan discovers all tapes matching the configuration.
// Tapes are returned sorted by their corpus-relative path. A tape that cannot
// be read is returned with its Err set.
func (s *Scanner) Scan() ([]TapeFile, error) {
	basePath, err := s.BasePath()
	if err != nil {
		return nil, err
	}

	if err := checkDir(basePath); err != nil {
		return nil, err
	}

	var files []TapeFile
	err = s.walk(basePath, func(filePath, relPath string, info fs.FileInfo) {
		file := TapeFile{
			Path:    filePath,
			Rel:     relPath,
			ModTime: info.ModTime(),
		}
		content, err := os.ReadFile(filePath)
		if err != nil {
			file.Err = fmt.Errorf("%s: failed to read tape: %w", relPath, err)
		} else {
			file.Content = content
		}
		files = append(files, file)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	SortTapeFiles(files)
	return files, nil
}

// FileCount returns a quick count of matching tapes without reading content.
func (s *Scanner) FileCount() (int, error) {
	basePath, err := s.BasePath()
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.walk(basePath, func(string, string, fs.FileInfo) {
		count++
	})
	return count, err
}

// Dirs returns every directory of the corpus that is not excluded,
// starting with the corpus root.
func (s *Scanner) Dirs() ([]string, error) {
	basePath, err := s.BasePath()
	if err != nil {
		return nil, err
	}

	if err := checkDir(basePath); err != nil {
		return nil, err
	}

	var dirs []string
	err = filepath.WalkDir(basePath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		relPath, _ := filepath.Rel(basePath, filePath)
		if s.shouldExcludeDir(relPath) {
			return filepath.SkipDir
		}
		dirs = append(dirs, filePath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// checkDir verifies that the corpus directory exists.
func checkDir(basePath string) error {
	info, err := os.Stat(basePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("tapes directory does not exist: %s", basePath)
		}
		return fmt.Errorf("failed to stat tapes directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("tapes path is not a directory: %s", basePath)
	}
	return nil
}

// Matches reports whether an absolute file path is a tape this scanner would pick up.
func (s *Scanner) Matches(filePath string) bool {
	basePath, err := s.BasePath()
	if err != nil {
		return false
	}
	relPath, err := filepath.Rel(basePath, filePath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return false
	}
	return s.shouldInclude(filepath.ToSlash(relPath))
}

func (s *Scanner) walk(basePath string, visit func(filePath, relPath string, info fs.FileInfo)) error {
	return filepath.WalkDir(basePath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		relPath, _ := filepath.Rel(basePath, filePath)

		if d.IsDir() {
			if s.shouldExcludeDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		relPath = filepath.ToSlash(relPath)
		if s.shouldInclude(relPath) {
			visit(filePath, relPath, info)
		}
		return nil
	})
}

// shouldInclude checks a slash-separated, corpus-relative path against the filters.
func (s *Scanner) shouldInclude(relPath string) bool {
	if !IsTapeFile(relPath) {
		return false
	}

	if s.config.SkipRedirects && IsRedirect(relPath) {
		return false
	}

	// Check exclude patterns first
	if s.matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}

	return s.matchesPatterns(relPath, s.config.IncludePatterns)
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	// Normalize path separators
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range s.config.ExcludePatterns {
		// "admin" matches "admin/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		// Only a pattern matching everything below the directory excludes it
		matched, _ := doublestar.Match(pattern, relPath+"/any/GET_200.json")
		if matched && strings.HasSuffix(pattern, "/**") {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
