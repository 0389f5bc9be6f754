// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers recorded tape files in a corpus directory.
package scanner

import (
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
)

// TapeFile represents a discovered tape file.
type TapeFile struct {
	// Path is the absolute path to the file
	Path string

	// Rel is the slash-separated path relative to the corpus directory
	Rel string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time

	// Err is set when the file could not be read; Content is then empty
	Err error
}

// redirectRegex matches the status suffix of tapes recorded for 3xx responses.
var redirectRegex = regexp.MustCompile(`30[0-9]\.json`)

// IsTapeFile checks if a file path has the tape extension.
func IsTapeFile(p string) bool {
	return strings.EqualFold(path.Ext(p), ".json")
}

// IsRedirect reports whether a tape was recorded for a redirect response.
func IsRedirect(p string) bool {
	return redirectRegex.MatchString(path.Base(p))
}

// SortTapeFiles sorts tapes by corpus-relative path.
func SortTapeFiles(files []TapeFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})
}
