// Package version holds build metadata, set via -ldflags.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line version summary.
func String() string {
	return fmt.Sprintf("uistate %s (commit %s, built %s)", Version, Commit, BuildDate)
}
