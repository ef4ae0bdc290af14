package tree

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fixtureMatcher excludes entries whose base name or relative path is listed.
type fixtureMatcher map[string]struct{}

func (matcher fixtureMatcher) Matches(relativePath string) bool {
	if _, excluded := matcher[relativePath]; excluded {
		return true
	}
	_, excluded := matcher[filepath.Base(relativePath)]
	return excluded
}

func excluding(names ...string) fixtureMatcher {
	matcher := fixtureMatcher{}
	for _, name := range names {
		matcher[name] = struct{}{}
	}
	return matcher
}

// buildFixture creates the given files under a fresh root. Keys ending in "/" create
// empty directories; other keys are files holding the mapped content.
func buildFixture(t *testing.T, entries map[string]string) string {
	t.Helper()
	rootDirectory := filepath.Join(t.TempDir(), "project")
	if makeDirError := os.MkdirAll(rootDirectory, 0o755); makeDirError != nil {
		t.Fatalf("mkdir root: %v", makeDirError)
	}
	for relativePath, content := range entries {
		targetPath := filepath.Join(rootDirectory, filepath.FromSlash(strings.TrimSuffix(relativePath, "/")))
		if strings.HasSuffix(relativePath, "/") {
			if makeDirError := os.MkdirAll(targetPath, 0o755); makeDirError != nil {
				t.Fatalf("mkdir %s: %v", relativePath, makeDirError)
			}
			continue
		}
		if makeDirError := os.MkdirAll(filepath.Dir(targetPath), 0o755); makeDirError != nil {
			t.Fatalf("mkdir parent of %s: %v", relativePath, makeDirError)
		}
		if writeError := os.WriteFile(targetPath, []byte(content), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
	return rootDirectory
}

// linkFixture creates a symlink named linkName in rootDirectory pointing at target,
// skipping the test where symlinks cannot be created.
func linkFixture(t *testing.T, rootDirectory string, target string, linkName string) {
	t.Helper()
	if symlinkError := os.Symlink(target, filepath.Join(rootDirectory, linkName)); symlinkError != nil {
		t.Skipf("symlinks unavailable: %v", symlinkError)
	}
}

// lockDirectory removes every permission from directory until the test ends.
func lockDirectory(t *testing.T, directory string) {
	t.Helper()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	if chmodError := os.Chmod(directory, 0o000); chmodError != nil {
		t.Fatalf("chmod %s: %v", directory, chmodError)
	}
	t.Cleanup(func() { _ = os.Chmod(directory, 0o755) })
}
