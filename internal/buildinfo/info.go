// Package buildinfo holds version details stamped in with -ldflags:
//
//	go build -ldflags "-X github.com/tripsplit-dev/tripsplit/internal/buildinfo.Version=v0.3.0"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the version line shown by `tripsplit --version`. A build
// without ldflags falls back to the module version recorded by the Go
// toolchain, when there is one.
func String() string {
	version := Version
	if version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, Commit, Date)
}
