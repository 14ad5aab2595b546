package version

import "fmt"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/vitedoc/internal/version.Version=v0.3.0".
var Version = "unknown"

// Build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `vitedoc --version`.
func String() string {
	return fmt.Sprintf("vitedoc %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
