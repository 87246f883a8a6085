// Package config loads projinfo configuration from the global and local configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/projinfo/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds scanning and output defaults.
type ApplicationConfiguration struct {
	Scan   ScanConfiguration   `mapstructure:"scan"`
	Output OutputConfiguration `mapstructure:"output"`
}

// ScanConfiguration extends the built-in classification rules.
type ScanConfiguration struct {
	IgnoreDirectories []string `mapstructure:"ignore_directories"`
	IgnoreExtensions  []string `mapstructure:"ignore_extensions"`
	CodeExtensions    []string `mapstructure:"code_extensions"`
	DependencyFiles   []string `mapstructure:"dependency_files"`
	Gitignore         *bool    `mapstructure:"gitignore"`
}

// OutputConfiguration controls persistence and report extras.
type OutputConfiguration struct {
	JSONFile  string `mapstructure:"json_file"`
	SaveJSON  *bool  `mapstructure:"save_json"`
	Tokens    *bool  `mapstructure:"tokens"`
	Model     string `mapstructure:"model"`
	Clipboard *bool  `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from the global file, then overlays the local or explicit file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads one file. A missing file yields an empty configuration unless it is required.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
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
	result.Scan = result.Scan.merge(override.Scan)
	result.Output = result.Output.merge(override.Output)
	return result
}

func (config ScanConfiguration) merge(override ScanConfiguration) ScanConfiguration {
	result := config
	result.IgnoreDirectories = mergeList(result.IgnoreDirectories, override.IgnoreDirectories)
	result.IgnoreExtensions = mergeList(result.IgnoreExtensions, override.IgnoreExtensions)
	result.CodeExtensions = mergeList(result.CodeExtensions, override.CodeExtensions)
	result.DependencyFiles = mergeList(result.DependencyFiles, override.DependencyFiles)
	if override.Gitignore != nil {
		result.Gitignore = cloneBool(override.Gitignore)
	}
	return result
}

func (config OutputConfiguration) merge(override OutputConfiguration) OutputConfiguration {
	result := config
	if override.JSONFile != "" {
		result.JSONFile = override.JSONFile
	}
	if override.SaveJSON != nil {
		result.SaveJSON = cloneBool(override.SaveJSON)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

// mergeList replaces base with a deduplicated override when the override is not empty.
func mergeList(base, override []string) []string {
	if len(override) == 0 {
		return base
	}
	return utils.DeduplicateStrings(override)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

// BoolValue returns the pointed-to value or fallback when unset.
func BoolValue(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
