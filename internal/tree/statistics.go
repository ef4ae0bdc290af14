package tree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const extensionDot = "."

// ExtensionCount is one row of the extension histogram.
type ExtensionCount struct {
	Extension string
	Count     int
}

// Statistics aggregates the full filtered subtree of a root.
type Statistics struct {
	FileCount        int
	DirCount         int
	TotalSizeBytes   int64
	MaxDepthObserved int

	extensionCounts map[string]int
	extensionOrder  []string
}

// ExtensionCounts returns a copy of the lower-cased extension histogram.
func (statistics Statistics) ExtensionCounts() map[string]int {
	counts := make(map[string]int, len(statistics.extensionCounts))
	for extension, count := range statistics.extensionCounts {
		counts[extension] = count
	}
	return counts
}

// TopExtensions returns up to limit extensions by descending count.
// Ties keep the order in which extensions were first encountered.
func (statistics Statistics) TopExtensions(limit int) []ExtensionCount {
	ranked := make([]ExtensionCount, 0, len(statistics.extensionOrder))
	for _, extension := range statistics.extensionOrder {
		ranked = append(ranked, ExtensionCount{Extension: extension, Count: statistics.extensionCounts[extension]})
	}
	sort.SliceStable(ranked, func(left, right int) bool {
		return ranked[left].Count > ranked[right].Count
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (statistics *Statistics) recordExtension(extension string) {
	if statistics.extensionCounts == nil {
		statistics.extensionCounts = make(map[string]int)
	}
	if _, seen := statistics.extensionCounts[extension]; !seen {
		statistics.extensionOrder = append(statistics.extensionOrder, extension)
	}
	statistics.extensionCounts[extension]++
}

// Aggregate walks the full filtered subtree of rootPath, ignoring any depth limit.
func Aggregate(rootPath string, excluder Excluder) (Statistics, error) {
	absoluteRoot, resolveError := resolveRoot(rootPath)
	if resolveError != nil {
		return Statistics{}, fmt.Errorf(errorResolveRootFormat, rootPath, resolveError)
	}
	return aggregateResolved(absoluteRoot, excluder, zap.NewNop()), nil
}

func aggregateResolved(absoluteRoot string, excluder Excluder, logger *zap.Logger) Statistics {
	var statistics Statistics
	collectStatistics(&statistics, absoluteRoot, "", 0, excluder, logger)
	return statistics
}

func collectStatistics(statistics *Statistics, directory string, relativeDirectory string, depth int, excluder Excluder, logger *zap.Logger) {
	for _, child := range listVisibleChildren(directory, relativeDirectory, excluder, logger) {
		if depth > statistics.MaxDepthObserved {
			statistics.MaxDepthObserved = depth
		}
		if child.isDirectory {
			statistics.DirCount++
			collectStatistics(statistics, child.absolutePath, child.relativePath, depth+1, excluder, logger)
			continue
		}
		statistics.FileCount++
		if sizeBytes, known := child.size(); known {
			statistics.TotalSizeBytes += sizeBytes
		}
		if extension := fileExtension(child.name); extension != "" {
			statistics.recordExtension(extension)
		}
	}
}

// fileExtension returns the lower-cased extension including its dot.
// Leading dots belong to the name, so ".bashrc" has no extension.
func fileExtension(fileName string) string {
	stem := strings.TrimLeft(fileName, extensionDot)
	if stem == "" {
		return ""
	}
	return strings.ToLower(filepath.Ext(stem))
}
