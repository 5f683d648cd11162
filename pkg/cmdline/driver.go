// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline dispatches a command line to one operation of a
// component.
//
// The first argument names the operation. The remaining arguments bind to
// its parameters either by switch (/name:value, -name=value, --name value)
// or by position. Every failure is reported once to a UsageWriter.
//
//	type Svn struct{}
//
//	type CommitArgs struct {
//		Path    string `short:"p"`
//		Message string `short:"m"`
//	}
//
//	func (s *Svn) Commit(ctx context.Context, a CommitArgs) error { ... }
//
//	func main() {
//		os.Exit(cmdline.Run(context.Background(), &Svn{}, os.Args[1:]))
//	}
//
// See package describe for how operations and parameters are declared.
package cmdline

import (
	"context"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/yeetrun/cmdline/pkg/buildinfo"
	"github.com/yeetrun/cmdline/pkg/convert"
	"github.com/yeetrun/cmdline/pkg/describe"
	"github.com/yeetrun/cmdline/pkg/usage"
)

// descriptors holds the descriptions of reflected components built with
// default settings.
var descriptors = describe.NewCache()

// Driver binds command lines to a component's operations. A Driver holds
// no per-call state and may process command lines concurrently.
type Driver struct {
	component *describe.Component
	recv      any
	usage     UsageWriter
	conv      convert.Converter
	log       *log.Logger
}

// New returns a Driver for component, which is either a value whose
// methods are operations (see describe.Reflect) or a *describe.Component
// built with describe.New.
func New(component any, opts ...Option) (*Driver, error) {
	cfg := newConfig(opts)
	desc, recv, err := cfg.describe(component)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		component: desc,
		recv:      recv,
		usage:     cfg.usage,
		conv:      cfg.conv,
		log:       cfg.logger,
	}
	if d.conv == nil {
		d.conv = convert.Default
	}
	if d.usage == nil {
		info := buildinfo.Read()
		if cfg.info != nil {
			info = *cfg.info
		}
		d.usage = usage.New(desc, usage.Options{
			Out:   cfg.out,
			Width: cfg.width,
			Color: cfg.color,
			Info:  info,
		})
	}
	return d, nil
}

func (c *config) describe(component any) (*describe.Component, any, error) {
	if desc, ok := component.(*describe.Component); ok {
		if desc == nil {
			return nil, nil, ErrNilComponent
		}
		return desc, nil, nil
	}
	if component == nil {
		return nil, nil, ErrNilComponent
	}
	rv := reflect.ValueOf(component)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, nil, ErrNilComponent
		}
	}

	if c.conv == nil && !c.strict {
		desc, err := descriptors.Get(rv.Type())
		return desc, component, err
	}
	var opts []describe.Option
	if c.conv != nil {
		opts = append(opts, describe.WithConverter(c.conv))
	}
	if c.strict {
		opts = append(opts, describe.StrictSlices())
	}
	desc, err := describe.Reflect(rv.Type(), opts...)
	return desc, component, err
}

// Component returns the description the driver dispatches to.
func (d *Driver) Component() *describe.Component { return d.component }

// Usage writes the full usage listing.
func (d *Driver) Usage() { d.usage.Usage() }

// Process selects the operation named by args[0], binds the remaining
// arguments to its parameters and invokes it.
//
// A failure is reported to the UsageWriter exactly once and returned as a
// *UsageError or *InvocationError.
func (d *Driver) Process(ctx context.Context, args ...string) error {
	return newSession(d, args).run(ctx)
}

// TryProcess is like Process but only reports whether the operation ran
// and succeeded.
func (d *Driver) TryProcess(ctx context.Context, args ...string) bool {
	return d.Process(ctx, args...) == nil
}
