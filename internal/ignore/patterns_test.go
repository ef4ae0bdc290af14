package ignore_test

import (
	"reflect"
	"testing"

	"github.com/temirov/ecotr3/internal/ignore"
)

// TestNewPatternSet verifies normalization, deduplication and the default union.
func TestNewPatternSet(t *testing.T) {
	testCases := []struct {
		name            string
		customPatterns  []string
		includeDefaults bool
		expected        []string
	}{
		{
			name:            "defaults_only",
			customPatterns:  nil,
			includeDefaults: true,
			expected:        []string{".git", "__pycache__", "*.pyc", "*.log", ".DS_Store"},
		},
		{
			name:            "custom_appended_after_defaults",
			customPatterns:  []string{"node_modules/", "*.tmp"},
			includeDefaults: true,
			expected:        []string{".git", "__pycache__", "*.pyc", "*.log", ".DS_Store", "node_modules/", "*.tmp"},
		},
		{
			name:            "invalid_entries_dropped",
			customPatterns:  []string{"", "   ", "# comment", "  #indented", "/", "//", " build/ "},
			includeDefaults: false,
			expected:        []string{"build/"},
		},
		{
			name:            "duplicates_collapse_to_first",
			customPatterns:  []string{"*.log", "dist", "dist"},
			includeDefaults: true,
			expected:        []string{".git", "__pycache__", "*.pyc", "*.log", ".DS_Store", "dist"},
		},
		{
			name:            "defaults_overridden",
			customPatterns:  []string{"vendor"},
			includeDefaults: false,
			expected:        []string{"vendor"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			patternSet := ignore.NewPatternSet(testCase.customPatterns, testCase.includeDefaults)
			if !reflect.DeepEqual(patternSet.Patterns(), testCase.expected) {
				t.Fatalf("unexpected patterns: got %v want %v", patternSet.Patterns(), testCase.expected)
			}
			if patternSet.Len() != len(testCase.expected) {
				t.Fatalf("unexpected length: got %d want %d", patternSet.Len(), len(testCase.expected))
			}
		})
	}
}

// TestDefaultPatternsReturnsCopy verifies callers cannot mutate the default set.
func TestDefaultPatternsReturnsCopy(t *testing.T) {
	firstCopy := ignore.DefaultPatterns()
	firstCopy[0] = "mutated"
	secondCopy := ignore.DefaultPatterns()
	if secondCopy[0] != ".git" {
		t.Fatalf("default patterns were mutated: %v", secondCopy)
	}
}
