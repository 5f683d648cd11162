// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"context"
	"reflect"
)

// MethodSpec is an operation waiting to be described. Build one with Func
// or Action.
type MethodSpec struct {
	name     string
	short    string
	help     string
	argType  reflect.Type
	recvType reflect.Type
	call     callFunc
}

// MethodOption configures a MethodSpec.
type MethodOption func(*MethodSpec)

// Short sets the operation's short name.
func Short(s string) MethodOption {
	return func(m *MethodSpec) { m.short = s }
}

// Help sets the operation's description.
func Help(s string) MethodOption {
	return func(m *MethodSpec) { m.help = s }
}

// Func registers fn as an operation whose parameters are the fields of A.
func Func[A any](name string, fn func(context.Context, A) error, opts ...MethodOption) MethodSpec {
	if fn == nil {
		panic("describe: Func(" + name + ") with nil func")
	}
	s := MethodSpec{
		name:    name,
		argType: reflect.TypeFor[A](),
		call: func(ctx context.Context, _, arg reflect.Value) error {
			return fn(ctx, arg.Interface().(A))
		},
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Action registers fn as an operation without parameters.
func Action(name string, fn func(context.Context) error, opts ...MethodOption) MethodSpec {
	if fn == nil {
		panic("describe: Action(" + name + ") with nil func")
	}
	s := MethodSpec{
		name: name,
		call: func(ctx context.Context, _, _ reflect.Value) error {
			return fn(ctx)
		},
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// New describes a component from registered operations, kept in the order
// given.
func New(name string, specs []MethodSpec, opts ...Option) (*Component, error) {
	o := newOptions(opts)
	description := ""
	if o.docs != nil {
		description = o.docs.Description
	}
	return build(name, nil, description, specs, o)
}

// MustNew is like New but panics on error.
func MustNew(name string, specs []MethodSpec, opts ...Option) *Component {
	c, err := New(name, specs, opts...)
	if err != nil {
		panic(err)
	}
	return c
}
