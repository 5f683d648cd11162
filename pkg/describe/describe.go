// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package describe builds an immutable model of the operations a component
// exposes on the command line.
//
// An operation takes its parameters as the exported fields of one struct.
// Field order is parameter order, and struct tags carry the metadata:
//
//	type CommitArgs struct {
//		Path    string   `short:"p" help:"Working copy path"`
//		Message string   `short:"m" help:"Log message"`
//		Quiet   bool     `default:"false"`
//		Files   []string `variadic:"true"`
//	}
//
// Tags:
//
//	name:"n"          parameter name (default: lower-cased field name; "-" skips the field)
//	short:"s"         short name
//	help:"..."        description
//	default:"v"       makes the parameter optional; v is converted once when described
//	variadic:"true"   the last field, a slice, collects every remaining value
//
// Components are described either by reflecting over a type's methods
// (Reflect, Cache) or by registering typed functions (New, Func, Action).
// Both produce the same model, and the model is safe for concurrent use.
package describe

import (
	"reflect"
	"slices"
	"strings"
)

// Component is a named set of operations.
type Component struct {
	name        string
	description string
	typ         reflect.Type
	methods     []*Method
}

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// Description returns the component description, if any.
func (c *Component) Description() string { return c.description }

// Type returns the reflected type, or nil for a registered component.
func (c *Component) Type() reflect.Type { return c.typ }

// Methods returns the component's operations. The returned slice is a copy.
func (c *Component) Methods() []*Method { return slices.Clone(c.methods) }

// Method returns the operation answering to name or short name, ignoring
// case.
func (c *Component) Method(name string) (*Method, bool) {
	for _, m := range c.methods {
		if m.IsNamed(name) {
			return m, true
		}
	}
	return nil, false
}

func (c *Component) String() string { return c.name }

// isNamed is the shared case-insensitive match. Blank queries never match
// and neither does an empty short name.
func isNamed(query, name, short string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	if strings.EqualFold(query, name) {
		return true
	}
	return short != "" && strings.EqualFold(query, short)
}

// collision reports the label two (name, short) pairs share, if any.
func collision(aName, aShort, bName, bShort string) (string, bool) {
	for _, a := range []string{aName, aShort} {
		for _, b := range []string{bName, bShort} {
			if a != "" && strings.EqualFold(a, b) {
				return a, true
			}
		}
	}
	return "", false
}
