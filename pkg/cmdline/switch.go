// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"regexp"
	"strings"
)

// Switch is a named argument such as --path=. or /m:message.
type Switch struct {
	Name  string
	Value string
}

// HasValue reports whether the switch carried a non-empty value.
func (s Switch) HasValue() bool { return s.Value != "" }

func (s Switch) String() string { return fmt.Sprintf("%s('%s')", s.Name, s.Value) }

// The value after the name is either introduced by ':' or '=', or follows
// the name directly (--flag- and --flag+). Whitespace right after the
// prefix or the name makes the token positional.
var (
	msSwitch   = regexp.MustCompile(`(?s)^/([\p{L}\p{Nd}_]+)(?:[:=](.*)|([^\s:=\p{L}\p{Nd}_].*))?$`)
	dashSwitch = regexp.MustCompile(`(?s)^--?([\p{L}\p{Nd}_]+)(?:[:=](.*)|([^\s:=\p{L}\p{Nd}_].*))?$`)
)

// ParseSwitch decomposes token into a switch. It accepts
//
//	/name  /name:value  /name=value
//	-name  -name:value  -name=value
//	--name --name:value --name=value
//
// and reports false for anything else, including empty and blank tokens.
func ParseSwitch(token string) (Switch, bool) {
	if strings.TrimSpace(token) == "" {
		return Switch{}, false
	}
	for _, re := range []*regexp.Regexp{msSwitch, dashSwitch} {
		m := re.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		value := m[2]
		if value == "" {
			value = m[3]
		}
		return Switch{Name: m[1], Value: value}, true
	}
	return Switch{}, false
}
