// Package ignore decides which filesystem entries are excluded from the rendered tree.
package ignore

import "strings"

const (
	// CommentPrefix marks a pattern entry that carries no pattern.
	CommentPrefix = "#"
	// DirectorySuffix marks a pattern that covers a directory and everything beneath it.
	DirectorySuffix = "/"
)

var defaultPatterns = []string{
	".git",
	"__pycache__",
	"*.pyc",
	"*.log",
	".DS_Store",
}

// DefaultPatterns returns a copy of the patterns that are active unless the caller opts out.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

// PatternSet is an immutable, deduplicated union of exclusion patterns.
type PatternSet struct {
	patterns []string
}

// NewPatternSet builds the active pattern set. Defaults come first when includeDefaults
// is set, followed by custom patterns in their original order. Blank, comment and
// slash-only entries are dropped.
func NewPatternSet(customPatterns []string, includeDefaults bool) PatternSet {
	var candidates []string
	if includeDefaults {
		candidates = append(candidates, defaultPatterns...)
	}
	candidates = append(candidates, customPatterns...)

	encountered := make(map[string]struct{}, len(candidates))
	patterns := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		normalized, valid := NormalizePattern(candidate)
		if !valid {
			continue
		}
		if _, exists := encountered[normalized]; exists {
			continue
		}
		encountered[normalized] = struct{}{}
		patterns = append(patterns, normalized)
	}
	return PatternSet{patterns: patterns}
}

// NormalizePattern trims a raw pattern and reports whether it carries anything to match.
func NormalizePattern(rawPattern string) (string, bool) {
	trimmed := strings.TrimSpace(rawPattern)
	if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
		return "", false
	}
	if strings.Trim(trimmed, DirectorySuffix) == "" {
		return "", false
	}
	return trimmed, true
}

// Patterns returns a copy of the active patterns.
func (set PatternSet) Patterns() []string {
	return append([]string(nil), set.patterns...)
}

// Len reports the number of active patterns.
func (set PatternSet) Len() int {
	return len(set.patterns)
}
