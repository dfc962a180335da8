package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/pathtitle/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/pathtitle/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/pathtitle/internal/version.Date={{.Date}}
)

// String renders the build information the way the version command prints it.
func String() string {
	return fmt.Sprintf("pathtitle version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
