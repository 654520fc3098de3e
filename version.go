package bluecommit

import (
	"fmt"
	"runtime"
)

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the application version, set via ldflags.
	Version = "dev"
	// Commit is the source revision, set via ldflags.
	Commit = "none"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString formats the build information on one line.
func VersionString() string {
	return fmt.Sprintf("bluecommit %s (commit %s, built %s, %s)", Version, Commit, CompiledAt, runtime.Version())
}
