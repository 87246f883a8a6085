// Package utils provides shared constants, logging setup, and version retrieval.
package utils

import (
	"runtime/debug"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

// Version is set at link time with -ldflags "-X github.com/temirov/projinfo/internal/utils.Version=...".
var Version = EmptyString

// GetApplicationVersion returns the link-time version, then the module version
// recorded in the build info, then a VCS revision, falling back to "unknown".
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" && setting.Value != EmptyString {
			return setting.Value
		}
	}
	return unknownVersion
}
