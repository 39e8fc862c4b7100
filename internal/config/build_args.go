package config

import "fmt"

// The following vars are injected at build time, e.g.
// go build -ldflags "-X github/chapool/go-hdwallet/internal/config.Commit=$(git rev-parse HEAD)"
var (
	ModuleName = "build.local/misses/ldflags"               //nolint:gochecknoglobals // set via ldflags
	Commit     = "< 40 chars git commit hash via ldflags >" //nolint:gochecknoglobals // set via ldflags
	BuildDate  = "1970-01-01-00:00:00"                      //nolint:gochecknoglobals // set via ldflags
)

// GetFormattedBuildArgs returns string representation of buildsargs set via ldflags "<ModuleName> @ <Commit> (<BuildDate>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
