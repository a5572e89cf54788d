// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

// Package buildinfo holds the single version value shared by cmd/sigmafox
// and cmd/sigmafox-mcp, carried forward from the teacher's
// cmd/guanabana/main.go (same semver.Version literal shape).
package buildinfo

import "github.com/maloquacious/semver"

// Version is SigmaFox's current release version.
var Version = semver.Version{
	Minor:      1,
	PreRelease: "alpha",
}

// String renders Version prefixed with the program name.
func String() string {
	return "sigmafox " + Version.String()
}
