// Package buildinfo carries version metadata stamped at build time:
//
//	go build -ldflags "\
//	  -X github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	  -X github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Stamped via ldflags; the zero values identify an untagged dev build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
