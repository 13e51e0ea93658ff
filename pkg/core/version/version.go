// ============================================================================
// meinRECHENWERK (mRW) - Rechenplattform
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all mRW components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Engine  = "1.0.0"
	Euler   = "1.0.0"
	Journal = "1.0.0"
	TUI     = "1.0.0"
)

// Set at build time via -ldflags "-X github.com/msto63/mRW/pkg/core/version.GitCommit=..."
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given component name
func ServiceVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "euler":
		return Euler
	case "journal":
		return Journal
	case "tui":
		return TUI
	default:
		return Platform
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Platform,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the information on one line
func (i Info) String() string {
	return fmt.Sprintf("meinRECHENWERK v%s (commit %s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
