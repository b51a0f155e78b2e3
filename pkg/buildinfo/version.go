// Package buildinfo exposes the version metadata stamped into release
// binaries.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/sunwheel-labs/sunwheel/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/sunwheel-labs/sunwheel/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/sunwheel-labs/sunwheel/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Stamped by the release pipeline; see the package comment.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns "version (commit)" for log lines and HTTP headers.
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Template returns the cobra version template, covering all three fields.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
