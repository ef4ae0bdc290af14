// Package utils contains general helpers shared by the ecotr3 packages.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ResolvePath returns path unchanged when absolute and joined onto baseDirectory otherwise.
// An empty baseDirectory resolves against the process working directory.
func ResolvePath(baseDirectory string, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if strings.TrimSpace(baseDirectory) == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(baseDirectory, path), nil
}

// WorkingDirectoryOr returns directory when set and the process working directory otherwise.
func WorkingDirectoryOr(directory string) (string, error) {
	if directory != "" {
		return directory, nil
	}
	return os.Getwd()
}
