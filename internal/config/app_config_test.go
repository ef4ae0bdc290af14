package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ecotr3/internal/utils"
)

type configTestCase struct {
	name              string
	globalContent     string
	localContent      string
	explicitPath      string
	expectStats       *bool
	expectDepth       *int
	expectExclude     []string
	expectUseDefaults *bool
	expectIgnoreFile  string
	expectOutput      string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:              "local_overrides_global",
			globalContent:     "tree:\n  stats: true\n  depth: 3\n  exclude: [dist]\n  use_defaults: false\n",
			localContent:      "tree:\n  depth: 1\n  exclude: [vendor, vendor, node_modules/]\n  output: tree.txt\n",
			expectStats:       boolPointer(true),
			expectDepth:       intPointer(1),
			expectExclude:     []string{"vendor", "node_modules/"},
			expectUseDefaults: boolPointer(false),
			expectOutput:      "tree.txt",
		},
		{
			name:             "explicit_path_replaces_local",
			globalContent:    "tree:\n  ignore_file: global.ignore\n",
			localContent:     "tree:\n  stats: true\n",
			explicitPath:     "custom.yaml",
			expectDepth:      intPointer(2),
			expectIgnoreFile: "global.ignore",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte("tree:\n  depth: 2\n"), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			treeConfig := loadedConfig.Tree
			if !reflect.DeepEqual(treeConfig.Stats, testCase.expectStats) {
				t.Fatalf("unexpected stats value: %v", treeConfig.Stats)
			}
			if !reflect.DeepEqual(treeConfig.Depth, testCase.expectDepth) {
				t.Fatalf("unexpected depth value: %v", treeConfig.Depth)
			}
			if !reflect.DeepEqual(treeConfig.UseDefaults, testCase.expectUseDefaults) {
				t.Fatalf("unexpected use_defaults value: %v", treeConfig.UseDefaults)
			}
			if len(testCase.expectExclude) == 0 {
				if len(treeConfig.Exclude) != 0 {
					t.Fatalf("expected no exclusions, got %v", treeConfig.Exclude)
				}
			} else if !reflect.DeepEqual(treeConfig.Exclude, testCase.expectExclude) {
				t.Fatalf("unexpected exclusions: got %v want %v", treeConfig.Exclude, testCase.expectExclude)
			}
			if treeConfig.IgnoreFile != testCase.expectIgnoreFile {
				t.Fatalf("expected ignore file %q, got %q", testCase.expectIgnoreFile, treeConfig.IgnoreFile)
			}
			if treeConfig.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, treeConfig.Output)
			}
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for a missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workingDir, utils.ConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error when the configuration path is a directory")
	}
}
