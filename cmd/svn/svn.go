// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/cmdline/pkg/describe"
)

// svn is a toy version-control client. It prints what it would do.
type svn struct {
	out io.Writer
	now func() time.Time
}

func (*svn) CommandDocs() describe.Docs {
	return describe.Docs{
		Description: "Subversion command-line client",
		Methods: map[string]describe.MethodDoc{
			"Status":   {Short: "st", Help: "Print the status of working copy files and directories."},
			"Commit":   {Short: "ci", Help: "Send changes from your working copy to the repository."},
			"PropSet":  {Short: "ps", Help: "Set the value of a property on files or directories."},
			"Diff":     {Short: "di", Help: "Display the differences between two revisions or paths."},
			"Resolve":  {Help: "Resolve conflicts on working copy files or directories."},
			"Log":      {Help: "Show the log messages for a set of revisions and paths."},
			"Lock":     {Help: "Lock working copy paths or URLs in the repository."},
			"Checkout": {Short: "co", Help: "Check out a working copy from a repository."},
			"Upgrade":  {Help: "Upgrade the metadata storage format for a working copy."},
		},
	}
}

func (s *svn) Status(ctx context.Context) error {
	fmt.Fprintln(s.out, "nothing to report")
	return nil
}

type commitArgs struct {
	Path    string `short:"p" help:"Working copy to commit"`
	Message string `short:"m" help:"Log message"`
}

func (s *svn) Commit(ctx context.Context, a commitArgs) error {
	if strings.TrimSpace(a.Message) == "" {
		return fmt.Errorf("empty log message")
	}
	fmt.Fprintf(s.out, "Committing %s: %s\n", a.Path, a.Message)
	return nil
}

type propSetArgs struct {
	Name  string `help:"Property name, for example svn:ignore"`
	Value string `help:"Property value"`
	Path  string `default:"." help:"Target path"`
}

func (s *svn) PropSet(ctx context.Context, a propSetArgs) error {
	fmt.Fprintf(s.out, "property '%s' set on '%s'\n", a.Name, a.Path)
	return nil
}

type diffArgs struct {
	Files []string `variadic:"true" help:"Paths to compare"`
}

func (s *svn) Diff(ctx context.Context, a diffArgs) error {
	if len(a.Files) == 0 {
		fmt.Fprintln(s.out, "Index: .")
		return nil
	}
	for _, f := range a.Files {
		fmt.Fprintf(s.out, "Index: %s\n", f)
	}
	return nil
}

var acceptOptions = []string{"base", "working", "mine-full", "theirs-full"}

type resolveArgs struct {
	Accept string   `help:"Version to keep: base, working, mine-full or theirs-full"`
	Files  []string `variadic:"true" help:"Conflicted paths"`
}

func (s *svn) Resolve(ctx context.Context, a resolveArgs) error {
	valid := false
	for _, o := range acceptOptions {
		if strings.EqualFold(a.Accept, o) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid accept option %q (want %s)", a.Accept, strings.Join(acceptOptions, ", "))
	}
	if len(a.Files) == 0 {
		a.Files = []string{"."}
	}
	for _, f := range a.Files {
		fmt.Fprintf(s.out, "Resolved conflicted state of '%s'\n", f)
	}
	return nil
}

type logArgs struct {
	Limit   int           `short:"l" default:"10" help:"Maximum number of entries"`
	Verbose bool          `short:"v" default:"false" help:"Print changed paths"`
	Since   time.Duration `default:"0s" help:"Only entries newer than this, for example 72h"`
}

func (s *svn) Log(ctx context.Context, a logArgs) error {
	if a.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", a.Limit)
	}
	line := fmt.Sprintf("showing up to %d entries", a.Limit)
	if a.Since > 0 {
		line += " since " + s.now().Add(-a.Since).UTC().Format(time.RFC3339)
	}
	if a.Verbose {
		line += " with changed paths"
	}
	fmt.Fprintln(s.out, line)
	return nil
}

type lockArgs struct {
	ID    uuid.UUID `help:"Lock token"`
	Force bool      `default:"false" help:"Steal the lock from another user"`
}

func (s *svn) Lock(ctx context.Context, a lockArgs) error {
	verb := "locked"
	if a.Force {
		verb = "stolen"
	}
	fmt.Fprintf(s.out, "lock %s %s\n", a.ID, verb)
	return nil
}

type checkoutArgs struct {
	URL  *url.URL `name:"url" help:"Repository URL"`
	Path string   `default:"." help:"Destination directory"`
}

func (s *svn) Checkout(ctx context.Context, a checkoutArgs) error {
	if a.URL.Scheme == "" {
		return fmt.Errorf("repository URL %q has no scheme", a.URL)
	}
	fmt.Fprintf(s.out, "Checked out %s into %s\n", a.URL.Redacted(), a.Path)
	return nil
}

type upgradeArgs struct {
	To *semver.Version `help:"Target working copy format"`
}

var minFormat = semver.MustParse("1.8.0")

func (s *svn) Upgrade(ctx context.Context, a upgradeArgs) error {
	if a.To.LessThan(minFormat) {
		return fmt.Errorf("format %s is older than %s", a.To, minFormat)
	}
	fmt.Fprintf(s.out, "Upgraded working copy to format %s\n", a.To)
	return nil
}
