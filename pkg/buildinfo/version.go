// Package buildinfo records the version stamped into the binary at
// build time.
//
// Release builds overwrite the defaults with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/umonteiro/toric/pkg/buildinfo.Version=v1.2.0 \
//	  -X github.com/umonteiro/toric/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/umonteiro/toric/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Build metadata, overwritten by the linker for release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template renders the cobra --version output.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
