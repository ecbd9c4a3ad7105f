// Package buildinfo carries version stamps injected with
//
//	-ldflags "-X modcalc/internal/buildinfo.Version=v1.2.0 -X modcalc/internal/buildinfo.Commit=abc123"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, or the commit for untagged builds.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Describe is the one-line build description used in logs and --version.
func Describe() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Short(), Commit, Date)
}
