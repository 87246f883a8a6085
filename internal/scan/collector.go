package scan

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/projinfo/internal/types"
)

// ErrInvalidRoot is returned when the scan root does not exist or is not a directory.
var ErrInvalidRoot = errors.New("the specified path does not exist or is not a directory")

// errInvalidText is returned when file content is not valid UTF-8.
var errInvalidText = errors.New("content is not valid UTF-8 text")

const (
	errorInvalidRootFormat   = "%w: %s"
	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	warningReadDirectory     = "skipping unreadable directory"
	warningReadCodeFile      = "error reading core code file"
	warningReadDependency    = "error reading dependency file"
	debugPrunedDirectory     = "pruned ignored directory"
	debugUnfollowedDirectory = "not following directory link"
	debugGitignoredEntry     = "skipping gitignored entry"

	relativePathSeparator = "/"
)

// Collector walks a project directory and builds a Report.
type Collector struct {
	rules            Rules
	logger           *zap.Logger
	respectGitignore bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithRules replaces the default rule sets.
func WithRules(rules Rules) Option {
	return func(collector *Collector) {
		collector.rules = rules
	}
}

// WithLogger sets the logger receiving read warnings and traversal decisions.
func WithLogger(logger *zap.Logger) Option {
	return func(collector *Collector) {
		if logger != nil {
			collector.logger = logger
		}
	}
}

// WithGitignore makes the collector honor the .gitignore file found at the scan root.
func WithGitignore(enabled bool) Option {
	return func(collector *Collector) {
		collector.respectGitignore = enabled
	}
}

// NewCollector returns a Collector using the default rules unless options say otherwise.
func NewCollector(options ...Option) *Collector {
	collector := &Collector{
		rules:  DefaultRules(),
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(collector)
	}
	return collector
}

// Collect traverses the directory rooted at rootDirectoryPath and returns its report.
// Only an invalid root is an error; unreadable files and directories are logged and skipped.
func (collector *Collector) Collect(rootDirectoryPath string) (*types.Report, error) {
	rootInfo, statError := os.Stat(rootDirectoryPath)
	if statError != nil || !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorInvalidRootFormat, ErrInvalidRoot, rootDirectoryPath)
	}
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	traversal := &traversal{
		rules:  collector.rules,
		logger: collector.logger,
		root:   absoluteRootPath,
		report: types.NewReport(),
	}
	if collector.respectGitignore {
		traversal.ignoreMatcher = loadGitignore(absoluteRootPath, collector.logger)
	}
	traversal.visitDirectory(absoluteRootPath, types.RootRelativePath)
	return traversal.report, nil
}

// traversal holds the state of one Collect call.
type traversal struct {
	rules         Rules
	logger        *zap.Logger
	root          string
	report        *types.Report
	ignoreMatcher pathMatcher
}

// visitDirectory records the files of one directory, then descends into its kept subdirectories.
// A directory that cannot be listed gets no tree node.
func (walk *traversal) visitDirectory(absoluteDirectoryPath string, relativeDirectoryPath string) {
	directoryEntries, readDirectoryError := os.ReadDir(absoluteDirectoryPath)
	if readDirectoryError != nil {
		walk.logger.Warn(warningReadDirectory, zap.String("path", absoluteDirectoryPath), zap.Error(readDirectoryError))
		return
	}
	currentNode := walk.locateDirectory(relativeDirectoryPath)

	var subdirectoryNames []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		absoluteEntryPath := filepath.Join(absoluteDirectoryPath, entryName)
		if directoryEntry.IsDir() {
			if walk.rules.IsIgnoredDirectory(entryName) {
				walk.logger.Debug(debugPrunedDirectory, zap.String("path", absoluteEntryPath))
				continue
			}
			if walk.isGitignored(absoluteEntryPath, true) {
				continue
			}
			subdirectoryNames = append(subdirectoryNames, entryName)
			continue
		}
		if isDirectoryLink(directoryEntry, absoluteEntryPath) {
			walk.logger.Debug(debugUnfollowedDirectory, zap.String("path", absoluteEntryPath))
			continue
		}
		walk.visitFile(currentNode, absoluteEntryPath, relativeDirectoryPath, entryName)
	}

	for _, subdirectoryName := range subdirectoryNames {
		walk.visitDirectory(
			filepath.Join(absoluteDirectoryPath, subdirectoryName),
			joinRelativePath(relativeDirectoryPath, subdirectoryName),
		)
	}
}

// visitFile classifies one file and captures its content when it is core code or a dependency manifest.
func (walk *traversal) visitFile(currentNode *types.Directory, absoluteFilePath string, relativeDirectoryPath string, fileName string) {
	if walk.isGitignored(absoluteFilePath, false) {
		currentNode.Set(fileName, types.File{Status: types.FileStatusIgnored})
		return
	}

	status := types.FileStatusNormal
	if walk.rules.IsIgnoredFile(fileName) {
		status = types.FileStatusIgnored
	}
	currentNode.Set(fileName, types.File{Status: status})

	relativeFilePath := joinRelativePath(relativeDirectoryPath, fileName)

	if walk.rules.IsCodeFile(fileName) {
		content, readError := readText(absoluteFilePath)
		if readError != nil {
			walk.logger.Warn(warningReadCodeFile, zap.String("path", absoluteFilePath), zap.Error(readError))
		} else {
			walk.report.AddCodeEntry(relativeFilePath, content)
		}
	}

	if walk.rules.IsDependencyFile(fileName) {
		content, readError := readText(absoluteFilePath)
		if readError != nil {
			walk.logger.Warn(warningReadDependency, zap.String("path", absoluteFilePath), zap.Error(readError))
		} else {
			walk.report.Dependencies.Set(relativeFilePath, content)
		}
	}
}

// locateDirectory walks the path segments from the tree root, creating missing nodes.
func (walk *traversal) locateDirectory(relativeDirectoryPath string) *types.Directory {
	currentNode := walk.report.DirectoryTree
	if relativeDirectoryPath == types.RootRelativePath {
		return currentNode
	}
	for _, segment := range strings.Split(relativeDirectoryPath, relativePathSeparator) {
		currentNode = currentNode.Subdirectory(segment)
	}
	return currentNode
}

func (walk *traversal) isGitignored(absolutePath string, isDirectory bool) bool {
	if walk.ignoreMatcher == nil {
		return false
	}
	if !walk.ignoreMatcher.Match(absolutePath, isDirectory) {
		return false
	}
	walk.logger.Debug(debugGitignoredEntry, zap.String("path", absolutePath))
	return true
}

// joinRelativePath joins a name onto a relative directory path without a leading "./" at the root.
func joinRelativePath(relativeDirectoryPath string, name string) string {
	if relativeDirectoryPath == types.RootRelativePath {
		return name
	}
	return path.Join(relativeDirectoryPath, name)
}

// isDirectoryLink reports whether the entry is a symbolic link resolving to a directory.
func isDirectoryLink(directoryEntry os.DirEntry, absoluteEntryPath string) bool {
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(absoluteEntryPath)
	return statError == nil && targetInfo.IsDir()
}

// readText reads the whole file and rejects content that is not valid UTF-8.
func readText(filePath string) (string, error) {
	data, readError := os.ReadFile(filePath)
	if readError != nil {
		return "", readError
	}
	if !utf8.Valid(data) {
		return "", errInvalidText
	}
	return string(data), nil
}
