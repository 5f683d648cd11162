// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Mode says when to use colour.
type Mode int

const (
	ModeAuto Mode = iota
	ModeAlways
	ModeNever
)

func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	}
	return "auto"
}

// ParseMode parses auto, always or never. The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "on", "true":
		return ModeAlways, nil
	case "never", "off", "false":
		return ModeNever, nil
	}
	return ModeAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type Colorizer struct {
	Enabled bool
}

func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ColorizerFor decides colour for output written to w. In ModeAuto colour
// is used only when w is a terminal and the environment allows it.
func ColorizerFor(w io.Writer, m Mode) Colorizer {
	switch m {
	case ModeAlways:
		return Colorizer{Enabled: true}
	case ModeNever:
		return Colorizer{}
	}
	return NewColorizer(IsTerminal(w))
}

// Color returns a fatih/color printer for attrs that honours c.
func (c Colorizer) Color(attrs ...color.Attribute) *color.Color {
	col := color.New(attrs...)
	if c.Enabled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
	return col
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of w when it is a terminal, or fallback.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallback
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return fallback
	}
	return cols
}
