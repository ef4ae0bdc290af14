package tree

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchPadding   = "│   "
	lastPadding     = "    "
	lineSeparator   = "\n"

	statisticsSeparator      = "========================================"
	statisticsHeader         = "Directory Statistics:"
	totalFilesFormat         = "Total Files: %d"
	totalDirectoriesFormat   = "Total Directories: %d"
	maximumDepthFormat       = "Maximum Depth: %d"
	totalSizeFormat          = "Total Size: %s"
	topExtensionsHeader      = "Top File Extensions:"
	extensionLineFormat      = "  %s: %d files"
	topExtensionDisplayLimit = 5

	errorResolveRootFormat = "resolving root %s: %w"
)

// Renderer produces the text diagram for a root directory.
type Renderer struct {
	excluder Excluder
	options  Options
	logger   *zap.Logger
}

// NewRenderer constructs a Renderer. A nil logger discards debug output.
func NewRenderer(excluder Excluder, options Options, logger *zap.Logger) *Renderer {
	return &Renderer{
		excluder: excluder,
		options:  options,
		logger:   loggerOrNop(logger),
	}
}

// Render is a convenience wrapper around NewRenderer(...).Render.
func Render(rootPath string, excluder Excluder, options Options) (string, error) {
	return NewRenderer(excluder, options, nil).Render(rootPath)
}

// Render walks rootPath depth-first and returns the tree, followed by the statistics
// block when requested. Unreadable directories render as empty.
func (renderer *Renderer) Render(rootPath string) (string, error) {
	absoluteRoot, resolveError := resolveRoot(rootPath)
	if resolveError != nil {
		return "", fmt.Errorf(errorResolveRootFormat, rootPath, resolveError)
	}

	var builder strings.Builder
	builder.WriteString(filepath.Base(absoluteRoot))
	renderer.renderDirectory(&builder, absoluteRoot, "", "", 0)

	if renderer.options.IncludeStats {
		statistics := aggregateResolved(absoluteRoot, renderer.excluder, renderer.logger)
		writeStatistics(&builder, statistics)
	}
	return builder.String(), nil
}

// renderDirectory emits one line per visible child of directory and recurses into child directories.
func (renderer *Renderer) renderDirectory(builder *strings.Builder, directory string, relativeDirectory string, prefix string, depth int) {
	if !renderer.options.depthPermits(depth) {
		return
	}
	children := listVisibleChildren(directory, relativeDirectory, renderer.excluder, renderer.logger)
	for childIndex, child := range children {
		connector, padding := branchConnector, branchPadding
		if childIndex == len(children)-1 {
			connector, padding = lastConnector, lastPadding
		}
		builder.WriteString(lineSeparator)
		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(child.name)
		if child.isDirectory {
			renderer.renderDirectory(builder, child.absolutePath, child.relativePath, prefix+padding, depth+1)
		}
	}
}

// writeStatistics appends the statistics block.
func writeStatistics(builder *strings.Builder, statistics Statistics) {
	lines := []string{
		"",
		statisticsSeparator,
		statisticsHeader,
		fmt.Sprintf(totalFilesFormat, statistics.FileCount),
		fmt.Sprintf(totalDirectoriesFormat, statistics.DirCount),
		fmt.Sprintf(maximumDepthFormat, statistics.MaxDepthObserved),
		fmt.Sprintf(totalSizeFormat, FormatSize(statistics.TotalSizeBytes)),
	}
	topExtensions := statistics.TopExtensions(topExtensionDisplayLimit)
	if len(topExtensions) > 0 {
		lines = append(lines, "", topExtensionsHeader)
		for _, extensionCount := range topExtensions {
			lines = append(lines, fmt.Sprintf(extensionLineFormat, extensionCount.Extension, extensionCount.Count))
		}
	}
	for _, line := range lines {
		builder.WriteString(lineSeparator)
		builder.WriteString(line)
	}
}
