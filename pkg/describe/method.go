// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"slices"
)

// callFunc runs an operation. recv is invalid for registered functions and
// arg is invalid for operations without a parameter struct.
type callFunc func(ctx context.Context, recv, arg reflect.Value) error

// Method is one invocable operation of a Component.
type Method struct {
	name        string
	short       string
	description string
	component   *Component
	params      []*Parameter
	argType     reflect.Type // struct or pointer to struct; nil when there are no parameters
	recvType    reflect.Type // nil for registered functions
	call        callFunc
}

func (m *Method) Name() string { return m.name }
func (m *Method) ShortName() string { return m.short }
func (m *Method) Description() string { return m.description }
func (m *Method) Component() *Component { return m.component }
func (m *Method) String() string { return m.name }
func (m *Method) IsNamed(name string) bool { return isNamed(name, m.name, m.short) }

// Parameters returns the operation's parameters in declaration order. The
// returned slice is a copy.
func (m *Method) Parameters() []*Parameter { return slices.Clone(m.params) }

// Parameter returns the parameter answering to name or short name, ignoring
// case.
func (m *Method) Parameter(name string) (*Parameter, bool) {
	for _, p := range m.params {
		if p.IsNamed(name) {
			return p, true
		}
	}
	return nil, false
}

// Invoke runs the operation on recv with one value per parameter, in
// declaration order. A nil value leaves the field at its zero value. recv
// is ignored for registered functions.
//
// A panic inside the operation is returned as a *PanicError.
func (m *Method) Invoke(ctx context.Context, recv any, values []any) (err error) {
	if len(values) != len(m.params) {
		return fmt.Errorf("describe: %s: got %d values for %d parameters", m.name, len(values), len(m.params))
	}
	rv, err := m.receiver(recv)
	if err != nil {
		return err
	}
	arg, err := m.buildArg(values)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Method: m.name, Value: r, Stack: debug.Stack()}
		}
	}()
	return m.call(ctx, rv, arg)
}

func (m *Method) receiver(recv any) (reflect.Value, error) {
	if m.recvType == nil {
		return reflect.Value{}, nil
	}
	if recv == nil {
		return reflect.Value{}, fmt.Errorf("describe: %s: nil receiver", m.name)
	}
	rv := reflect.ValueOf(recv)
	if !rv.Type().AssignableTo(m.recvType) {
		return reflect.Value{}, fmt.Errorf("describe: %s: receiver %s is not %s", m.name, rv.Type(), m.recvType)
	}
	return rv, nil
}

func (m *Method) buildArg(values []any) (reflect.Value, error) {
	if m.argType == nil {
		return reflect.Value{}, nil
	}
	st := m.argType
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	ptr := reflect.New(st)
	s := ptr.Elem()
	for i, p := range m.params {
		if values[i] == nil {
			continue
		}
		f := s.Field(p.field)
		v := reflect.ValueOf(values[i])
		switch {
		case v.Type().AssignableTo(f.Type()):
		case v.Type().ConvertibleTo(f.Type()):
			v = v.Convert(f.Type())
		default:
			return reflect.Value{}, fmt.Errorf("describe: %s: value %s is not assignable to parameter %s (%s)", m.name, v.Type(), p.name, f.Type())
		}
		f.Set(v)
	}
	if m.argType.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return s, nil
}

// Parameter is one formal parameter of a Method.
type Parameter struct {
	name        string
	short       string
	description string
	index       int
	field       int
	typ         reflect.Type
	optional    bool
	variadic    bool
	def         any
	defText     string
	method      *Method
}

func (p *Parameter) Name() string { return p.name }
func (p *Parameter) ShortName() string { return p.short }
func (p *Parameter) Description() string { return p.description }
func (p *Parameter) Method() *Method { return p.method }
func (p *Parameter) String() string { return p.name }

// Index returns the parameter's position in its operation.
func (p *Parameter) Index() int { return p.index }

// Type returns the declared type.
func (p *Parameter) Type() reflect.Type { return p.typ }

// ElemType returns the type each bound value is converted to: the slice
// element type for a variadic parameter, the declared type otherwise.
func (p *Parameter) ElemType() reflect.Type {
	if p.variadic {
		return p.typ.Elem()
	}
	return p.typ
}

// IsOptional reports whether the parameter may be omitted. Variadic
// parameters are always optional.
func (p *Parameter) IsOptional() bool { return p.optional }

// IsVariadic reports whether the parameter collects all remaining values.
func (p *Parameter) IsVariadic() bool { return p.variadic }

// IsBoolean reports whether the declared type is exactly bool.
func (p *Parameter) IsBoolean() bool { return p.typ == boolType }

// DefaultValue returns the value an omitted optional parameter takes: the
// converted default tag, or an empty slice for a variadic parameter. The
// value is shared by every caller and must not be modified; convert
// DefaultText again for a private copy.
func (p *Parameter) DefaultValue() any { return p.def }

// DefaultText returns the default tag as written, or "".
func (p *Parameter) DefaultText() string { return p.defText }

func (p *Parameter) IsNamed(name string) bool { return isNamed(name, p.name, p.short) }

var boolType = reflect.TypeFor[bool]()
