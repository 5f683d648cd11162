// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/yeetrun/cmdline/pkg/buildinfo"
	"github.com/yeetrun/cmdline/pkg/convert"
	"github.com/yeetrun/cmdline/pkg/prefs"
	"github.com/yeetrun/cmdline/pkg/tui"
)

// Option configures a Driver.
type Option func(*config)

type config struct {
	usage  UsageWriter
	out    io.Writer
	width  int
	color  tui.Mode
	info   *buildinfo.Info
	conv   convert.Converter
	logger *log.Logger
	strict bool
}

func newConfig(opts []Option) *config {
	c := &config{out: os.Stderr}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// WithUsageWriter replaces the default usage writer.
func WithUsageWriter(w UsageWriter) Option {
	return func(c *config) { c.usage = w }
}

// WithOutput sets where the default usage writer writes. The default is
// os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.out = w
		}
	}
}

// WithWidth sets the wrapping width of the default usage writer. Zero
// means the terminal width, or 88 columns when not writing to a terminal.
func WithWidth(n int) Option {
	return func(c *config) { c.width = n }
}

// WithColor sets when the default usage writer uses colour.
func WithColor(m tui.Mode) Option {
	return func(c *config) { c.color = m }
}

// WithBuildInfo sets the program identity shown in usage headers. The
// default is read from the running binary.
func WithBuildInfo(info buildinfo.Info) Option {
	return func(c *config) { c.info = &info }
}

// WithConverter sets the converter used for argument values and defaults.
// The default is convert.Default.
func WithConverter(conv convert.Converter) Option {
	return func(c *config) { c.conv = conv }
}

// WithLogger sets the logger for binding diagnostics. Sessions log at
// debug level. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStrictSlices rejects slice parameters that are not marked variadic.
func WithStrictSlices() Option {
	return func(c *config) { c.strict = true }
}

// WithPrefs applies the presentation and strictness settings from p.
func WithPrefs(p prefs.Prefs) Option {
	return func(c *config) {
		if p.Width > 0 {
			c.width = p.Width
		}
		if m, err := tui.ParseMode(p.Color); err == nil {
			c.color = m
		}
		if p.StrictSlices {
			c.strict = true
		}
	}
}
