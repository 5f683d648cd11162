// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buildinfo identifies the running program for usage headers.
package buildinfo

import (
	"fmt"
	"path"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Injected at build time via -ldflags, e.g.
//
//	-X github.com/yeetrun/cmdline/pkg/buildinfo.buildVersion=1.2.3
var (
	buildVersion   string
	buildCopyright string
)

// Info describes a program.
type Info struct {
	Title     string
	Copyright string
	// Version is nil when the build carries no semantic version.
	Version *semver.Version
	// Commit is the short VCS revision, "dev" without VCS data.
	Commit string
}

// Read returns the Info of the running binary.
func Read() Info {
	info := Info{
		Copyright: strings.TrimSpace(buildCopyright),
		Commit:    VersionCommit(),
	}
	v := strings.TrimSpace(buildVersion)
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Title = path.Base(bi.Path)
		if v == "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	if v != "" {
		if sv, err := semver.NewVersion(v); err == nil {
			info.Version = sv
		}
	}
	return info
}

// VersionString returns the semantic version without a leading v, or the
// commit.
func (i Info) VersionString() string {
	if i.Version != nil {
		return i.Version.String()
	}
	if i.Commit != "" {
		return i.Commit
	}
	return "dev"
}

// Header returns "<title> - v<version>", using description in place of
// the title when it is set.
func (i Info) Header(description string) string {
	title := description
	if title == "" {
		title = i.Title
	}
	if title == "" {
		return "v" + i.VersionString()
	}
	return fmt.Sprintf("%s - v%s", title, i.VersionString())
}

// VersionCommit returns the commit hash of the current build.
func VersionCommit() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var dirty bool
	var commit string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if commit == "" {
		return "dev"
	}

	if len(commit) >= 9 {
		commit = commit[:9]
	}
	if dirty {
		commit += "+dirty"
	}
	return commit
}
