package tree

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	relativePathSeparator = "/"

	skippedDirectoryMessage = "skipping unreadable directory"
	pathLogField            = "path"
)

// visibleEntry is a child that survived exclusion.
type visibleEntry struct {
	name         string
	absolutePath string
	relativePath string
	isDirectory  bool
	entry        os.DirEntry
	// target is the resolved FileInfo of a symlink; nil for other entries and dangling links.
	target       fs.FileInfo
}

// size reports the byte size of the entry, following symlinks. Dangling links have no size.
func (child visibleEntry) size() (int64, bool) {
	if child.target != nil {
		return child.target.Size(), true
	}
	if child.entry.Type()&fs.ModeSymlink != 0 {
		return 0, false
	}
	fileInfo, infoError := child.entry.Info()
	if infoError != nil {
		return 0, false
	}
	return fileInfo.Size(), true
}

// listVisibleChildren returns the children of directory in byte order with excluded entries removed.
// An unreadable or vanished directory has no children.
func listVisibleChildren(directory string, relativeDirectory string, excluder Excluder, logger *zap.Logger) []visibleEntry {
	// os.ReadDir returns entries sorted by filename, i.e. in byte order.
	directoryEntries, readError := os.ReadDir(directory)
	if readError != nil {
		logger.Debug(skippedDirectoryMessage, zap.String(pathLogField, directory), zap.Error(readError))
		return nil
	}

	visible := make([]visibleEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		relativePath := entryName
		if relativeDirectory != "" {
			relativePath = relativeDirectory + relativePathSeparator + entryName
		}
		if excluder != nil && excluder.Matches(relativePath) {
			continue
		}
		child := visibleEntry{
			name:         entryName,
			absolutePath: filepath.Join(directory, entryName),
			relativePath: relativePath,
			isDirectory:  directoryEntry.IsDir(),
			entry:        directoryEntry,
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			// Links are followed; a dangling link stays a file without size.
			if targetInfo, statError := os.Stat(child.absolutePath); statError == nil {
				child.target = targetInfo
				child.isDirectory = targetInfo.IsDir()
			}
		}
		visible = append(visible, child)
	}
	return visible
}

// resolveRoot returns the absolute, cleaned form of rootPath.
func resolveRoot(rootPath string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	return filepath.Clean(absoluteRoot), nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
