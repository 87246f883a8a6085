package scan

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

const (
	gitIgnoreFileName    = ".gitignore"
	debugNoGitignore     = "no .gitignore at scan root"
	warningGitignoreLoad = "could not parse .gitignore"
)

// pathMatcher reports whether an absolute path is excluded.
type pathMatcher interface {
	Match(path string, isDir bool) bool
}

// loadGitignore returns a matcher for the .gitignore at the scan root, or nil when none is usable.
func loadGitignore(absoluteRootPath string, logger *zap.Logger) pathMatcher {
	gitIgnorePath := filepath.Join(absoluteRootPath, gitIgnoreFileName)
	if _, statError := os.Stat(gitIgnorePath); statError != nil {
		logger.Debug(debugNoGitignore, zap.String("path", gitIgnorePath))
		return nil
	}
	matcher, parseError := gitignore.NewGitIgnore(gitIgnorePath, absoluteRootPath)
	if parseError != nil {
		logger.Warn(warningGitignoreLoad, zap.String("path", gitIgnorePath), zap.Error(parseError))
		return nil
	}
	return matcher
}
