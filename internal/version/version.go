// Package version holds the portalctl build version, set at link time.
package version

// Version is overridden with -ldflags "-X .../internal/version.Version=...".
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from, if known.
var GitCommit = ""

// String returns the version with the commit appended when known.
func String() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
