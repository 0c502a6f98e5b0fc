// Package version holds build-time version information.
// The variables are overridden at release time via -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = ""

	// BuildDate is the RFC3339 build timestamp.
	BuildDate = ""
)
