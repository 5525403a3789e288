// Package version exposes build metadata for esplink binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version and Commit can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/esplink/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/esplink/internal/version.Commit=abc1234"
//
// Otherwise they are filled from the VCS stamp in the build info.
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		v, c := fromBuildInfo(debug.ReadBuildInfo())
		if Version == "" {
			Version = v
		}
		if Commit == "" {
			Commit = c
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo derives a version and short commit from Go build info.
func fromBuildInfo(info *debug.BuildInfo, ok bool) (string, string) {
	if !ok || info == nil {
		return "", ""
	}

	var version, revision string
	var dirty bool

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && dirty {
		revision += "-dirty"
	}

	return version, revision
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent with every request made to the device.
func UserAgent() string {
	return fmt.Sprintf("esplink/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
