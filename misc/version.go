// Package misc keeps program identity.
package misc

import (
	"runtime/debug"
)

const appName = "odsw"

// set by linker
var (
	version = "dev"
	gitHash = ""
)

// GetAppName returns program name used for logs, reports and generator
// metadata.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, module version from build info is used
// when linker did not set one.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns vcs revision program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// Generator returns value for document generator metadata.
func Generator() string {
	return GetAppName() + "/" + GetVersion()
}
