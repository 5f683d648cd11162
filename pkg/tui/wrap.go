// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"strings"
	"unicode"
)

// minWrapWidth keeps hyphenation from looping on absurd widths.
const minWrapWidth = 8

// Wrap breaks s into lines of at most width runes. Lines break at
// whitespace. A word longer than a whole line is split after punctuation
// when possible and hyphenated otherwise. Runs of whitespace collapse to
// one space.
func Wrap(s string, width int) []string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	var (
		lines []string
		line  []rune
	)
	flush := func() {
		lines = append(lines, string(line))
		line = line[:0:0]
	}

	for _, field := range strings.Fields(s) {
		word := []rune(field)
		for len(word) > 0 {
			avail := width - len(line)
			if len(line) > 0 {
				avail-- // separating space
			}
			if len(word) <= avail {
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, word...)
				break
			}
			if len(word) <= width || avail < 2 {
				flush()
				continue
			}
			// Longer than a line: fill what is left, breaking after
			// punctuation or else with a hyphen.
			if len(line) > 0 {
				line = append(line, ' ')
			}
			if n := punctBreak(word[:avail]); n > 0 {
				line = append(line, word[:n]...)
				word = word[n:]
			} else {
				n = avail - 1
				line = append(line, word[:n]...)
				line = append(line, '-')
				word = word[n:]
			}
			flush()
		}
	}
	if len(line) > 0 {
		flush()
	}
	return lines
}

// punctBreak returns the length of the longest prefix of word that ends in
// punctuation, or 0.
func punctBreak(word []rune) int {
	for i := len(word) - 1; i > 0; i-- {
		if unicode.IsPunct(word[i]) {
			return i + 1
		}
	}
	return 0
}
