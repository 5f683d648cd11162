// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"io"
	"strings"
)

// IndentWriter prefixes every line written through it with the current
// indentation.
type IndentWriter struct {
	w       io.Writer
	indent  int
	midLine bool
}

func NewIndentWriter(w io.Writer) *IndentWriter {
	return &IndentWriter{w: w}
}

// Indent returns the current indentation in spaces.
func (iw *IndentWriter) Indent() int { return iw.indent }

// Push adds n spaces of indentation until the returned func is called.
func (iw *IndentWriter) Push(n int) (pop func()) {
	iw.indent += n
	return func() { iw.indent -= n }
}

// Write implements io.Writer. Indentation is written lazily, so blank
// lines stay empty.
func (iw *IndentWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		chunk := p
		if i >= 0 {
			chunk = p[:i+1]
		}
		if !iw.midLine && chunk[0] != '\n' && iw.indent > 0 {
			if _, err := io.WriteString(iw.w, strings.Repeat(" ", iw.indent)); err != nil {
				return written, err
			}
		}
		n, err := iw.w.Write(chunk)
		written += n
		if err != nil {
			return written, err
		}
		iw.midLine = chunk[len(chunk)-1] != '\n'
		p = p[len(chunk):]
	}
	return written, nil
}
