// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package usage

import (
	"sort"
	"strings"

	"github.com/yeetrun/cmdline/pkg/describe"
)

// maxSuggestDistance is the largest edit distance still worth suggesting.
const maxSuggestDistance = 3

// levenshtein returns the case-insensitive edit distance between a and b.
func levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// similarCommands returns up to n operation names close to input, nearest
// first.
func similarCommands(input string, c *describe.Component, n int) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	type suggestion struct {
		name     string
		distance int
	}
	var found []suggestion
	for _, m := range c.Methods() {
		d := levenshtein(input, m.Name())
		if m.ShortName() != "" {
			d = min(d, levenshtein(input, m.ShortName()))
		}
		if d > 0 && d <= maxSuggestDistance && d < len([]rune(m.Name())) {
			found = append(found, suggestion{name: m.Name(), distance: d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})
	if len(found) > n {
		found = found[:n]
	}
	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.name
	}
	return names
}
