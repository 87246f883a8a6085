package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/projinfo/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func writeConfigurationFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	return homeDirectory
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name              string
		globalContent     string
		localContent      string
		explicitPath      string
		explicitContent   string
		expectDirectories []string
		expectGitignore   *bool
		expectJSONFile    string
		expectTokens      *bool
		expectModel       string
	}{
		{
			name:              "local_overrides_global",
			globalContent:     "scan:\n  ignore_directories: [vendor]\n  gitignore: true\noutput:\n  json_file: global.json\n  model: gpt-4\n",
			localContent:      "scan:\n  ignore_directories: [third_party, third_party]\noutput:\n  json_file: local.json\n  tokens: true\n",
			expectDirectories: []string{"third_party"},
			expectGitignore:   boolPointer(true),
			expectJSONFile:    "local.json",
			expectTokens:      boolPointer(true),
			expectModel:       "gpt-4",
		},
		{
			name:              "global_only",
			globalContent:     "scan:\n  ignore_directories: [vendor]\n",
			expectDirectories: []string{"vendor"},
		},
		{
			name:            "explicit_path_replaces_local",
			localContent:    "output:\n  json_file: local.json\n",
			explicitPath:    "custom.yaml",
			explicitContent: "output:\n  json_file: custom.json\n",
			expectJSONFile:  "custom.json",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := isolateHome(t)
			workingDirectory := t.TempDir()
			if testCase.globalContent != "" {
				writeConfigurationFile(t, filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfigurationFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfigurationFile(t, filepath.Join(workingDirectory, testCase.explicitPath), testCase.explicitContent)
			}

			loaded, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if !reflect.DeepEqual(loaded.Scan.IgnoreDirectories, testCase.expectDirectories) {
				t.Fatalf("expected directories %v, got %v", testCase.expectDirectories, loaded.Scan.IgnoreDirectories)
			}
			if !reflect.DeepEqual(loaded.Scan.Gitignore, testCase.expectGitignore) {
				t.Fatalf("expected gitignore %v, got %v", testCase.expectGitignore, loaded.Scan.Gitignore)
			}
			if loaded.Output.JSONFile != testCase.expectJSONFile {
				t.Fatalf("expected json file %q, got %q", testCase.expectJSONFile, loaded.Output.JSONFile)
			}
			if !reflect.DeepEqual(loaded.Output.Tokens, testCase.expectTokens) {
				t.Fatalf("expected tokens %v, got %v", testCase.expectTokens, loaded.Output.Tokens)
			}
			if loaded.Output.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loaded.Output.Model)
			}
		})
	}
}

func TestLoadApplicationConfigurationErrors(t *testing.T) {
	t.Run("malformed_local_file", func(t *testing.T) {
		isolateHome(t)
		workingDirectory := t.TempDir()
		writeConfigurationFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), "scan: [unterminated\n")
		if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
			t.Fatalf("expected error for malformed configuration")
		}
	})
	t.Run("missing_explicit_file", func(t *testing.T) {
		isolateHome(t)
		workingDirectory := t.TempDir()
		if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, ExplicitFilePath: "absent.yaml"}); err == nil {
			t.Fatalf("expected error for missing explicit configuration")
		}
	})
	t.Run("directory_instead_of_file", func(t *testing.T) {
		isolateHome(t)
		workingDirectory := t.TempDir()
		if err := os.Mkdir(filepath.Join(workingDirectory, utils.ConfigFileName), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
			t.Fatalf("expected error when configuration path is a directory")
		}
	})
}

func TestBoolValue(t *testing.T) {
	if BoolValue(nil, true) != true || BoolValue(boolPointer(false), true) != false {
		t.Fatalf("unexpected BoolValue results")
	}
}
