// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"github.com/yeetrun/cmdline/pkg/describe"
	"github.com/yeetrun/cmdline/pkg/usage"
)

// UsageWriter receives exactly one call for every failed Process.
type UsageWriter interface {
	// Usage describes every operation.
	Usage()
	// InvocationFailed reports an error returned (or a panic raised) by m.
	InvocationFailed(m *describe.Method, err error)
	// CommandNameRequired reports that no command name was given.
	CommandNameRequired()
	// InvalidCommandName reports that name matches no operation.
	InvalidCommandName(name string)
	// InvalidArgumentCount reports missing, surplus, or value-less arguments for m.
	InvalidArgumentCount(m *describe.Method)
	// InvalidSwitchFormat reports a positional token with nowhere to go.
	InvalidSwitchFormat(token string)
	// InvalidArgumentName reports a switch that names no parameter of m.
	InvalidArgumentName(m *describe.Method, name string)
	// InvalidArgumentValue reports text that could not be converted for p.
	InvalidArgumentValue(p *describe.Parameter, value string)
}

var _ UsageWriter = (*usage.Writer)(nil)
