// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"context"
	"reflect"
)

// Documented is implemented by components that describe themselves.
// CommandDocs is called on a zero value of the component type, so it must
// not depend on the component's state.
type Documented interface {
	CommandDocs() Docs
}

// Docs documents a component and its operations.
type Docs struct {
	Description string
	Methods     map[string]MethodDoc // keyed by Go method name
}

// MethodDoc documents one operation.
type MethodDoc struct {
	Short string
	Help  string
}

var (
	contextType    = reflect.TypeFor[context.Context]()
	errorType      = reflect.TypeFor[error]()
	documentedType = reflect.TypeFor[Documented]()
)

// Reflect describes the operations in t's method set.
//
// An exported method is an operation when its signature (after the
// receiver) is one of
//
//	func(context.Context, A) error
//	func(A) error
//	func(context.Context) error
//	func() error
//
// or the same without the error result, where A is a struct or pointer to
// struct holding the parameters. Other methods are ignored. Methods promoted
// from embedded types are included unless the outer type redeclares them.
// Operations are ordered by name.
func Reflect(t reflect.Type, opts ...Option) (*Component, error) {
	if t == nil {
		return nil, ErrNilType
	}
	o := newOptions(opts)
	var docs Docs
	if o.docs != nil {
		docs = *o.docs
	} else {
		docs = docsOf(t)
	}

	var specs []MethodSpec
	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		spec, ok := reflectMethod(t, m)
		if !ok {
			continue
		}
		if d, ok := docs.Methods[m.Name]; ok {
			spec.short = d.Short
			spec.help = d.Help
		}
		specs = append(specs, spec)
	}
	return build(typeName(t), t, docs.Description, specs, o)
}

func reflectMethod(t reflect.Type, m reflect.Method) (MethodSpec, bool) {
	ft := m.Type
	// Method types of concrete types include the receiver; interface
	// method types do not.
	first := 1
	if t.Kind() == reflect.Interface {
		first = 0
	}
	if ft.IsVariadic() {
		return MethodSpec{}, false
	}
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) != errorType {
			return MethodSpec{}, false
		}
	default:
		return MethodSpec{}, false
	}

	var (
		hasCtx  bool
		argType reflect.Type
	)
	switch ft.NumIn() - first {
	case 0:
	case 1:
		in := ft.In(first)
		switch {
		case in == contextType:
			hasCtx = true
		case isArgStruct(in):
			argType = in
		default:
			return MethodSpec{}, false
		}
	case 2:
		if ft.In(first) != contextType || !isArgStruct(ft.In(first+1)) {
			return MethodSpec{}, false
		}
		hasCtx = true
		argType = ft.In(first + 1)
	default:
		return MethodSpec{}, false
	}

	fn := m.Func
	name := m.Name
	returnsErr := ft.NumOut() == 1
	call := func(ctx context.Context, recv, arg reflect.Value) error {
		f := fn
		in := make([]reflect.Value, 0, 3)
		if f.IsValid() {
			in = append(in, recv)
		} else {
			f = recv.MethodByName(name)
		}
		if hasCtx {
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		if argType != nil {
			in = append(in, arg)
		}
		out := f.Call(in)
		if returnsErr && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}

	return MethodSpec{
		name:     name,
		argType:  argType,
		recvType: t,
		call:     call,
	}, true
}

func isArgStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func typeName(t reflect.Type) string {
	n := t
	if n.Kind() == reflect.Pointer {
		n = n.Elem()
	}
	if n.Name() != "" {
		return n.Name()
	}
	return t.String()
}

func docsOf(t reflect.Type) Docs {
	if !t.Implements(documentedType) {
		return Docs{}
	}
	var v reflect.Value
	switch t.Kind() {
	case reflect.Interface:
		return Docs{}
	case reflect.Pointer:
		v = reflect.New(t.Elem())
	default:
		v = reflect.Zero(t)
	}
	return v.Interface().(Documented).CommandDocs()
}
