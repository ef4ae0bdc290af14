// Package config loads .e3ignore pattern files and the YAML application configuration.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ecotr3/internal/ignore"
)

const (
	ignoreFileTemplate = `# Ecotr3 Ignore File
# Add files and directories to exclude from tree view

# Example entries:
# .git
# node_modules/
# *.log
`

	warningIgnoreFileMessage = "could not read ignore file, using default patterns"
	pathLogField             = "path"
)

// PatternSources lists every origin of exclusion patterns for one invocation.
type PatternSources struct {
	// IgnoreFilePath is read when non-empty; a missing file contributes nothing.
	IgnoreFilePath string
	// ExclusionPatterns are passed on the command line or set in configuration.
	ExclusionPatterns []string
	// IncludeDefaults unions the built-in default patterns.
	IncludeDefaults bool
}

// LoadIgnoreFile reads newline-delimited patterns, skipping blank lines and # comments.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFile(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if errors.Is(openFileError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		pattern, valid := ignore.NormalizePattern(scanner.Text())
		if !valid {
			continue
		}
		patterns = append(patterns, pattern)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading %s: %w", ignoreFilePath, scanError)
	}
	return patterns, nil
}

// CreateIgnoreFile writes the commented ignore file template. It reports false without
// touching the file when one already exists.
func CreateIgnoreFile(ignoreFilePath string) (bool, error) {
	fileHandle, openFileError := os.OpenFile(ignoreFilePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if openFileError != nil {
		if errors.Is(openFileError, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", ignoreFilePath, openFileError)
	}
	if _, writeError := fileHandle.WriteString(ignoreFileTemplate); writeError != nil {
		fileHandle.Close()
		return false, fmt.Errorf("writing %s: %w", ignoreFilePath, writeError)
	}
	if closeError := fileHandle.Close(); closeError != nil {
		return false, fmt.Errorf("closing %s: %w", ignoreFilePath, closeError)
	}
	return true, nil
}

// LoadPatternSet combines the ignore file, explicit exclusions and defaults into one set.
// An unreadable ignore file is logged as a warning and skipped.
func LoadPatternSet(sources PatternSources, logger *zap.Logger) ignore.PatternSet {
	var customPatterns []string
	if sources.IgnoreFilePath != "" {
		filePatterns, loadError := LoadIgnoreFile(sources.IgnoreFilePath)
		if loadError != nil {
			if logger != nil {
				logger.Warn(warningIgnoreFileMessage, zap.String(pathLogField, sources.IgnoreFilePath), zap.Error(loadError))
			}
		} else {
			customPatterns = append(customPatterns, filePatterns...)
		}
	}
	for _, pattern := range sources.ExclusionPatterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			customPatterns = append(customPatterns, trimmed)
		}
	}
	return ignore.NewPatternSet(customPatterns, sources.IncludeDefaults)
}
