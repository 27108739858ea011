// Package version exposes build metadata stamped in via -ldflags.
package version

//nolint:revive // Overwritten by the build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
