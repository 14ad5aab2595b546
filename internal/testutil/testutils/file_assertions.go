package testutils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	if !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, content)
	}
	return fa
}

// AssertFileNotContains validates that a file does not contain the given text.
func (fa *FileAssertions) AssertFileNotContains(relativePath, unexpected string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if !ok {
		return fa
	}
	if strings.Contains(content, unexpected) {
		fa.t.Errorf("Expected file %s not to contain %q\nActual content:\n%s",
			relativePath, unexpected, content)
	}
	return fa
}

// AssertMarkdownFiles validates the exact set of *.md file names directly in relativePath.
func (fa *FileAssertions) AssertMarkdownFiles(relativePath string, want ...string) *FileAssertions {
	fa.t.Helper()
	got := fa.ListMarkdown(relativePath)
	expected := append([]string(nil), want...)
	sort.Strings(expected)
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		fa.t.Errorf("Markdown files in %s: got %v, want %v", relativePath, got, expected)
	}
	return fa
}

// ListMarkdown returns the sorted *.md file names directly in relativePath.
func (fa *FileAssertions) ListMarkdown(relativePath string) []string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		fa.t.Logf("Failed to read directory %s: %v", fullPath, err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files
}

// GetFileContent reads and returns the content of a file.
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// WriteFile creates a file (and parent directories) under the base directory.
func (fa *FileAssertions) WriteFile(relativePath, content string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), testDirPermissions); err != nil {
		fa.t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), testFilePermissions); err != nil {
		fa.t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}
	return fa
}

// Backdate sets the modification time of a file into the past so later
// rewrites are observable through ModTime.
func (fa *FileAssertions) Backdate(relativePath string, age time.Duration) time.Time {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	ts := time.Now().Add(-age).Truncate(time.Second)
	if err := os.Chtimes(fullPath, ts, ts); err != nil {
		fa.t.Fatalf("Failed to backdate %s: %v", fullPath, err)
	}
	return ts
}

// ModTime returns the modification time of a file.
func (fa *FileAssertions) ModTime(relativePath string) time.Time {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	stat, err := os.Stat(fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to stat file %s: %v", fullPath, err)
	}
	return stat.ModTime()
}

func (fa *FileAssertions) read(relativePath string) (string, bool) {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return "", false
	}
	return string(content), true
}
