// Package version carries build information stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/banshee-data/holdmap/internal/version.Version=v1.2.0"
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build information on one line.
func String() string {
	return fmt.Sprintf("holdmap %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
