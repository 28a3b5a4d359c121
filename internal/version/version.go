// Package version provides build-time version information.
package version

import "fmt"

// AppName is the user-facing application name.
const AppName = "ClickShapes"

// These variables are set at build time using -ldflags
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line version banner.
func String() string {
	return fmt.Sprintf("%s %s (%s, built %s)", AppName, Version, GitCommit, BuildTime)
}
