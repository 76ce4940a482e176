// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/FlyingWolFox/cfg-string-generator/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/FlyingWolFox/cfg-string-generator/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/FlyingWolFox/cfg-string-generator/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/cfggen
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the cfggen binary.
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("cfggen %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
