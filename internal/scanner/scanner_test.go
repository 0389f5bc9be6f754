// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tapeJSON = `{"req":{"method":"GET","url":"/"},"res":{"statusCode":200}}`

// setupTestDir creates a temporary corpus with test files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		dir := filepath.Dir(fullPath)
		err := os.MkdirAll(dir, 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	return tmpDir
}

func rels(files []TapeFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Rel
	}
	return out
}

func TestNew_DefaultConfig(t *testing.T) {
	scanner := New(Config{})

	assert.NotNil(t, scanner)
	assert.Equal(t, "tapes", scanner.config.BasePath)
	assert.Equal(t, []string{"**/*.json"}, scanner.config.IncludePatterns)
}

func TestNew_CustomConfig(t *testing.T) {
	scanner := New(Config{
		BasePath:        "/custom/path",
		IncludePatterns: []string{"api/**/*.json"},
		ExcludePatterns: []string{"admin/**"},
		SkipRedirects:   true,
	})

	assert.Equal(t, "/custom/path", scanner.config.BasePath)
	assert.Equal(t, []string{"api/**/*.json"}, scanner.config.IncludePatterns)
	assert.Equal(t, []string{"admin/**"}, scanner.config.ExcludePatterns)
	assert.True(t, scanner.config.SkipRedirects)
}

func TestScanner_Scan_SortedByRelativePath(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"users/GET_200.json":       tapeJSON,
		"users/42/GET_200.json":    tapeJSON,
		"bugs/POST_201.json":       tapeJSON,
		"users/42/DELETE_204.json": tapeJSON,
		"notes.txt":                "not a tape",
		"users/42/readme.md":       "# not a tape",
	})

	files, err := New(Config{BasePath: tmpDir}).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"bugs/POST_201.json",
		"users/42/DELETE_204.json",
		"users/42/GET_200.json",
		"users/GET_200.json",
	}, rels(files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.NotEmpty(t, f.Content)
		assert.False(t, f.ModTime.IsZero())
	}
}

func TestScanner_Scan_ExcludePatterns(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"users/GET_200.json":       tapeJSON,
		"admin/users/GET_200.json": tapeJSON,
		"health/GET_200.json":      tapeJSON,
	})

	files, err := New(Config{
		BasePath:        tmpDir,
		ExcludePatterns: []string{"admin/**", "health/*.json"},
	}).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"users/GET_200.json"}, rels(files))
}

func TestScanner_Scan_SkipRedirects(t *testing.T) {
	files := map[string]string{
		"login/GET_200.json":  tapeJSON,
		"login/GET_302.json":  tapeJSON,
		"assets/GET_304.json": tapeJSON,
	}

	tmpDir := setupTestDir(t, files)

	skipped, err := New(Config{BasePath: tmpDir, SkipRedirects: true}).Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{"login/GET_200.json"}, rels(skipped))

	all, err := New(Config{BasePath: tmpDir}).Scan()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestScanner_Scan_EmptyDirectory(t *testing.T) {
	files, err := New(Config{BasePath: t.TempDir()}).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_Scan_MissingDirectory(t *testing.T) {
	_, err := New(Config{BasePath: "/nonexistent/tapes"}).Scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScanner_Scan_FileAsBasePath(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{"GET_200.json": tapeJSON})

	_, err := New(Config{BasePath: filepath.Join(tmpDir, "GET_200.json")}).Scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScanner_Scan_SpecificPatterns(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api/users/GET_200.json": tapeJSON,
		"web/index/GET_200.json": tapeJSON,
	})

	files, err := New(Config{
		BasePath:        tmpDir,
		IncludePatterns: []string{"api/**/*.json"},
	}).Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{"api/users/GET_200.json"}, rels(files))
}

func TestScanner_Scan_UnreadableTape(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"users/GET_200.json": tapeJSON,
	})
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone.json"), filepath.Join(tmpDir, "users", "POST_201.json")))

	files, err := New(Config{BasePath: tmpDir}).Scan()
	require.NoError(t, err)
	require.Equal(t, []string{"users/GET_200.json", "users/POST_201.json"}, rels(files))

	assert.NoError(t, files[0].Err)
	assert.NotEmpty(t, files[0].Content)
	assert.ErrorIs(t, files[1].Err, os.ErrNotExist)
	assert.Empty(t, files[1].Content)
}

func TestScanner_FileCount(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"users/GET_200.json":  tapeJSON,
		"users/POST_201.json": tapeJSON,
		"admin/GET_200.json":  tapeJSON,
		"users/GET_301.json":  tapeJSON,
	})

	count, err := New(Config{
		BasePath:        tmpDir,
		ExcludePatterns: []string{"admin/**"},
		SkipRedirects:   true,
	}).FileCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanner_Dirs(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"users/42/GET_200.json": tapeJSON,
		"admin/GET_200.json":    tapeJSON,
	})

	dirs, err := New(Config{BasePath: tmpDir, ExcludePatterns: []string{"admin/**"}}).Dirs()
	require.NoError(t, err)

	root, err := filepath.Abs(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "users"),
		filepath.Join(root, "users", "42"),
	}, dirs)
}

func TestScanner_Dirs_MissingDirectory(t *testing.T) {
	_, err := New(Config{BasePath: filepath.Join(t.TempDir(), "missing")}).Dirs()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScanner_Matches(t *testing.T) {
	tmpDir := t.TempDir()
	scanner := New(Config{BasePath: tmpDir, ExcludePatterns: []string{"admin/**"}, SkipRedirects: true})

	assert.True(t, scanner.Matches(filepath.Join(tmpDir, "users", "GET_200.json")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "users", "GET_302.json")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "admin", "GET_200.json")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "users", "notes.txt")))
	assert.False(t, scanner.Matches(filepath.Join(filepath.Dir(tmpDir), "GET_200.json")))
}
