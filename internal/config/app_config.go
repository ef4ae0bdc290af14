package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ecotr3/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command defaults read from configuration files.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree" yaml:"tree"`
}

// TreeConfiguration defines defaults shared by the print, create and copy commands.
type TreeConfiguration struct {
	Stats       *bool    `mapstructure:"stats" yaml:"stats"`
	Depth       *int     `mapstructure:"depth" yaml:"depth"`
	Exclude     []string `mapstructure:"exclude" yaml:"exclude"`
	UseDefaults *bool    `mapstructure:"use_defaults" yaml:"use_defaults"`
	IgnoreFile  string   `mapstructure:"ignore_file" yaml:"ignore_file"`
	Output      string   `mapstructure:"output" yaml:"output"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the
// local or explicit file; later sources override earlier ones key by key.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory, workingDirectoryError := utils.WorkingDirectoryOr(options.WorkingDirectory)
	if workingDirectoryError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if options.ExplicitFilePath != "" {
		explicitPath, resolveErr := utils.ResolvePath(workingDirectory, options.ExplicitFilePath)
		if resolveErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("resolve configuration path %s: %w", options.ExplicitFilePath, resolveErr)
		}
		if _, statErr := os.Stat(explicitPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", explicitPath, statErr)
		}
		localPath = explicitPath
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Exclude = utils.DeduplicatePatterns(merged.Tree.Exclude)
	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Stats != nil {
		result.Stats = cloneBool(override.Stats)
	}
	if override.Depth != nil {
		result.Depth = cloneInt(override.Depth)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseDefaults != nil {
		result.UseDefaults = cloneBool(override.UseDefaults)
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
