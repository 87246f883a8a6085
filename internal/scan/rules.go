// Package scan walks a project directory and collects its tree, core source files, and dependency manifests.
package scan

import (
	"strings"

	"github.com/temirov/projinfo/internal/utils"
)

const extensionSeparator = "."

var (
	defaultIgnoredDirectories = []string{
		"venv", ".venv", "env", "__pycache__", ".git", ".idea",
		"node_modules", "dist", "build", ".vscode", ".pytest_cache",
		"site-packages", "target",
	}

	defaultIgnoredExtensions = []string{
		".log", ".bin", ".dll", ".exe", ".so", ".dylib", ".DS_Store",
		".pyc", ".pyo", ".ipynb_checkpoints", ".tmp", ".bak", ".swp",
		".sqlite3", ".db", ".dat", ".json", ".yaml", ".yml", ".toml",
		".xml", ".txt", ".md", ".csv", ".xlsx", ".xls", ".pdf",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".ico",
		".zip", ".tar", ".gz", ".rar", ".7z", ".mp3", ".mp4", ".avi",
		".lock",
	}

	defaultCodeExtensions = []string{".rs", ".py", ".js", ".ts", ".java", ".cpp", ".c", ".h", ".hpp"}

	defaultDependencyFileNames = []string{"Cargo.toml", "Cargo.lock"}

	defaultRules = newRules(defaultIgnoredDirectories, defaultIgnoredExtensions, defaultCodeExtensions, defaultDependencyFileNames)
)

// Rules decides how each directory and file is classified. A Rules value is never mutated after construction.
type Rules struct {
	ignoredDirectories  map[string]struct{}
	ignoredExtensions   []string
	codeExtensions      []string
	dependencyFileNames map[string]struct{}
}

// Additions lists names and extensions appended to the default rule sets.
type Additions struct {
	IgnoredDirectories  []string
	IgnoredExtensions   []string
	CodeExtensions      []string
	DependencyFileNames []string
}

// DefaultRules returns the fixed rule sets.
func DefaultRules() Rules {
	return defaultRules
}

// Extend returns a copy of the rules that also applies the additions.
// Extensions without a leading dot get one.
func (rules Rules) Extend(additions Additions) Rules {
	return newRules(
		append(setMembers(rules.ignoredDirectories), additions.IgnoredDirectories...),
		append(append([]string{}, rules.ignoredExtensions...), normalizeExtensions(additions.IgnoredExtensions)...),
		append(append([]string{}, rules.codeExtensions...), normalizeExtensions(additions.CodeExtensions)...),
		append(setMembers(rules.dependencyFileNames), additions.DependencyFileNames...),
	)
}

// IsIgnoredDirectory reports whether a directory with this name is pruned from traversal.
func (rules Rules) IsIgnoredDirectory(name string) bool {
	_, ignored := rules.ignoredDirectories[name]
	return ignored
}

// IsIgnoredFile reports whether the file name ends with an ignored extension.
func (rules Rules) IsIgnoredFile(name string) bool {
	return hasAnySuffix(name, rules.ignoredExtensions)
}

// IsCodeFile reports whether the file name ends with a core-code extension.
func (rules Rules) IsCodeFile(name string) bool {
	return hasAnySuffix(name, rules.codeExtensions)
}

// IsDependencyFile reports whether the file name is a dependency manifest name.
func (rules Rules) IsDependencyFile(name string) bool {
	_, matched := rules.dependencyFileNames[name]
	return matched
}

func newRules(ignoredDirectories, ignoredExtensions, codeExtensions, dependencyFileNames []string) Rules {
	return Rules{
		ignoredDirectories:  toSet(ignoredDirectories),
		ignoredExtensions:   utils.DeduplicateStrings(ignoredExtensions),
		codeExtensions:      utils.DeduplicateStrings(codeExtensions),
		dependencyFileNames: toSet(dependencyFileNames),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range utils.DeduplicateStrings(values) {
		set[value] = struct{}{}
	}
	return set
}

func setMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	return members
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, extension := range extensions {
		trimmed := strings.TrimSpace(extension)
		if trimmed == utils.EmptyString {
			continue
		}
		if !strings.HasPrefix(trimmed, extensionSeparator) {
			trimmed = extensionSeparator + trimmed
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
