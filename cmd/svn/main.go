// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command svn is a small Subversion-style client driven by cmdline.
//
//	svn [--config=FILE] [--no-color] [--log-level=LEVEL] [--width=N] <command> [args...]
//	svn help
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/logging"
	"github.com/yeetrun/cmdline/pkg/prefs"
	"github.com/yeetrun/cmdline/pkg/tui"
)

type globalFlagsParsed struct {
	Config   string `flag:"config" help:"Preferences file (default: nearest .cmdline.toml)"`
	NoColor  bool   `flag:"no-color" help:"Disable colour output"`
	LogLevel string `flag:"log-level" help:"Log level (debug|info|warn|error)"`
	Width    int    `flag:"width" help:"Wrap usage output at this many columns"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// loadPrefs reads preferences and applies the global flags on top.
func loadPrefs(flags globalFlagsParsed, getenv func(string) string) (prefs.Prefs, error) {
	var p prefs.Prefs
	if flags.Config != "" {
		var err error
		if p, err = prefs.LoadFile(flags.Config); err != nil {
			return prefs.Prefs{}, err
		}
		if err := p.ApplyEnv(getenv); err != nil {
			return prefs.Prefs{}, err
		}
	} else {
		var err error
		if p, _, err = prefs.LoadFromCwd(); err != nil {
			return prefs.Prefs{}, err
		}
	}
	if flags.NoColor {
		p.Color = tui.ModeNever.String()
	}
	if flags.LogLevel != "" {
		p.LogLevel = flags.LogLevel
	}
	if flags.Width > 0 {
		p.Width = flags.Width
	}
	return p, p.Validate()
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdline.ExitUsage
	}
	p, err := loadPrefs(flags, os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdline.ExitFailure
	}
	logger, err := logging.FromPrefs(p, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdline.ExitFailure
	}
	defer logger.Close()

	comp := &svn{out: stdout, now: time.Now}
	opts := []cmdline.Option{
		cmdline.WithPrefs(p),
		cmdline.WithLogger(logger.Logger),
		cmdline.WithOutput(stderr),
	}
	if len(rest) == 1 && (rest[0] == "help" || rest[0] == "--help" || rest[0] == "-h") {
		d, err := cmdline.New(comp, opts...)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return cmdline.ExitFailure
		}
		d.Usage()
		return cmdline.ExitOK
	}
	return cmdline.Run(ctx, comp, rest, opts...)
}
