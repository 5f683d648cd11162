// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package usage writes help listings and command-line diagnostics for a
// described component.
package usage

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/yeetrun/cmdline/pkg/buildinfo"
	"github.com/yeetrun/cmdline/pkg/describe"
	"github.com/yeetrun/cmdline/pkg/tui"
)

// DefaultWidth is the wrapping width when the output is not a terminal.
const DefaultWidth = 88

type Options struct {
	// Out defaults to os.Stderr.
	Out io.Writer
	// Width is the wrapping width. Zero means the terminal width of Out,
	// or DefaultWidth.
	Width int
	Color tui.Mode
	Info  buildinfo.Info
}

// Writer is the default usage writer. It is safe for concurrent use.
type Writer struct {
	comp  *describe.Component
	info  buildinfo.Info
	width int

	mu        sync.Mutex
	out       *tui.IndentWriter
	errColor  *color.Color
	nameColor *color.Color
	dimColor  *color.Color
}

func New(c *describe.Component, opts Options) *Writer {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	width := opts.Width
	if width <= 0 {
		width = tui.Width(out, DefaultWidth)
	}
	col := tui.ColorizerFor(out, opts.Color)
	return &Writer{
		comp:      c,
		info:      opts.Info,
		width:     width,
		out:       tui.NewIndentWriter(out),
		errColor:  col.Color(color.FgRed, color.Bold),
		nameColor: col.Color(color.Bold),
		dimColor:  col.Color(color.Faint),
	}
}

func (w *Writer) Usage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.commands()
}

func (w *Writer) InvocationFailed(m *describe.Method, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("%s failed: %v", m.Name(), err))
}

func (w *Writer) CommandNameRequired() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error("A command name is required.")
	w.commands()
}

func (w *Writer) InvalidCommandName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("'%s' is not a valid command.", name))
	if similar := similarCommands(name, w.comp, 3); len(similar) > 0 {
		fmt.Fprintf(w.out, "Did you mean %s?\n", strings.Join(similar, ", "))
	}
	fmt.Fprintln(w.out)
	w.commands()
}

func (w *Writer) InvalidArgumentCount(m *describe.Method) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("Invalid number of arguments for '%s'.", m.Name()))
	w.method(m)
}

func (w *Writer) InvalidSwitchFormat(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("'%s' is not a valid switch or argument.", token))
}

func (w *Writer) InvalidArgumentName(m *describe.Method, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("'%s' is not a valid argument for '%s'.", name, m.Name()))
	w.method(m)
}

func (w *Writer) InvalidArgumentValue(p *describe.Parameter, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.header()
	w.error(fmt.Sprintf("'%s' is not a valid value for '%s' (expected %s).", value, p.Name(), p.ElemType()))
	w.method(p.Method())
}

func (w *Writer) header() {
	fmt.Fprintln(w.out, w.info.Header(w.comp.Description()))
	if w.info.Copyright != "" {
		fmt.Fprintln(w.out, w.info.Copyright)
	}
	fmt.Fprintln(w.out)
}

func (w *Writer) error(msg string) {
	w.errColor.Fprintln(w.out, msg)
}

func (w *Writer) commands() {
	fmt.Fprintln(w.out, "Commands:")
	pop := w.out.Push(2)
	defer pop()
	for i, m := range w.comp.Methods() {
		if i > 0 {
			fmt.Fprintln(w.out)
		}
		w.method(m)
	}
}

// method writes m's synopsis, description and parameter list.
func (w *Writer) method(m *describe.Method) {
	fmt.Fprintln(w.out, w.nameColor.Sprint(Signature(m)))

	pop := w.out.Push(4)
	defer pop()
	w.wrapped(m.Description(), "", 0)

	params := m.Parameters()
	labels := make([]string, len(params))
	col := 0
	for i, p := range params {
		labels[i] = parameterLabel(p) + ":"
		col = max(col, len(labels[i]))
	}
	col += 2
	for i, p := range params {
		var note string
		if p.IsOptional() && !p.IsVariadic() && p.DefaultText() != "" {
			note = fmt.Sprintf("(default %s)", p.DefaultText())
		}
		fmt.Fprintf(w.out, "%-*s", col, labels[i])
		w.wrapped(p.Description(), note, col)
	}
}

// wrapped writes text followed by note wrapped to the remaining width. The
// first line continues the current line; the rest are indented by hang.
// Wrapping sees plain text only; note is dimmed afterwards.
func (w *Writer) wrapped(text, note string, hang int) {
	plain := strings.TrimSpace(text)
	if note != "" {
		plain = strings.TrimSpace(plain + " " + note)
	}
	if plain == "" {
		if hang > 0 {
			fmt.Fprintln(w.out)
		}
		return
	}
	lines := tui.Wrap(plain, w.width-w.out.Indent()-hang)
	if note != "" {
		w.dimTail(lines, note)
	}
	for i, line := range lines {
		if i > 0 {
			fmt.Fprint(w.out, strings.Repeat(" ", hang))
		}
		fmt.Fprintln(w.out, line)
	}
}

// dimTail dims everything from the start of note to the end of lines. note
// ends the wrapped text, so it starts at the last line holding its first
// word.
func (w *Writer) dimTail(lines []string, note string) {
	head, _, _ := strings.Cut(note, " ")
	for i := len(lines) - 1; i >= 0; i-- {
		at := strings.LastIndex(lines[i], head)
		if at < 0 {
			continue
		}
		lines[i] = lines[i][:at] + w.dimColor.Sprint(lines[i][at:])
		for j := i + 1; j < len(lines); j++ {
			lines[j] = w.dimColor.Sprint(lines[j])
		}
		return
	}
}

// Signature renders m as it would be typed, for example
//
//	Commit[ci] <--path[-p]> <--message[-m]> [--quiet[+|-]] [files...]
func Signature(m *describe.Method) string {
	var b strings.Builder
	b.WriteString(m.Name())
	if m.ShortName() != "" {
		fmt.Fprintf(&b, "[%s]", m.ShortName())
	}
	for _, p := range m.Parameters() {
		b.WriteByte(' ')
		b.WriteString(parameterSignature(p))
	}
	return b.String()
}

func parameterSignature(p *describe.Parameter) string {
	if p.IsVariadic() {
		return "[" + p.Name() + "...]"
	}
	label := "--" + p.Name()
	if p.ShortName() != "" {
		label += "[-" + p.ShortName() + "]"
	}
	switch {
	case p.IsBoolean():
		label += "[+|-]"
	case p.IsOptional() && p.DefaultText() != "":
		label += "=" + p.DefaultText()
	}
	if p.IsOptional() {
		return "[" + label + "]"
	}
	return "<" + label + ">"
}

func parameterLabel(p *describe.Parameter) string {
	label := "--" + p.Name()
	if p.ShortName() != "" {
		label += "[-" + p.ShortName() + "]"
	}
	if p.IsBoolean() {
		label += "[+|-]"
	}
	if p.IsVariadic() {
		label += "..."
	}
	return label
}
