package version

import (
	"fmt"
	"runtime/debug"
)

// These can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/bluetrax/bluetrax/internal/version.Version=v1.2.3 \
//	                   -X github.com/bluetrax/bluetrax/internal/version.Commit=abc123"
//
// When unset, the commit is taken from the embedded VCS info if available.
var (
	// Version is the semantic version of the application
	Version = "dev"
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Commit == "" {
		Commit = vcsRevision()
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified == "true" {
		revision += "-dirty"
	}
	return revision
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
