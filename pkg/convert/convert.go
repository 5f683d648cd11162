// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert turns raw command-line text into typed values.
//
// A Converter reports an error only when the text cannot be read as the
// requested type. Any other fault inside a conversion function is a bug in
// that function and surfaces as a panic.
package convert

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

var (
	// ErrSyntax reports text that is not in the form the target type expects.
	ErrSyntax = errors.New("invalid syntax")
	// ErrRange reports text that is well formed but outside the target type's range.
	ErrRange = errors.New("value out of range")
	// ErrUnsupported reports a target type with no known conversion.
	ErrUnsupported = errors.New("unsupported type")
)

// Error is returned by Convert when text cannot be converted.
type Error struct {
	Text string
	Type reflect.Type
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Text, e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Converter converts text into a value whose dynamic type is exactly target,
// or, when target is an interface type, a value assignable to it.
type Converter interface {
	Convert(text string, target reflect.Type) (any, error)
}

// Func converts text into a value of the type it was registered for.
type Func func(text string) (any, error)

// Registry is a Converter with per-type conversion functions. It is safe
// for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[reflect.Type]Func
}

// Default is the process-wide registry used when no other is configured.
var Default = newBuiltinRegistry()

// NewRegistry returns a registry holding a copy of Default's conversions.
func NewRegistry() *Registry {
	return Default.Clone()
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{funcs: make(map[reflect.Type]Func, len(r.funcs))}
	for t, fn := range r.funcs {
		c.funcs[t] = fn
	}
	return c
}

// Register installs fn as the conversion for values of type t, replacing any
// previous registration. It panics if t or fn is nil.
func (r *Registry) Register(t reflect.Type, fn Func) {
	if t == nil {
		panic("convert: Register with nil type")
	}
	if fn == nil {
		panic(fmt.Sprintf("convert: Register(%s) with nil func", t))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[reflect.Type]Func)
	}
	r.funcs[t] = fn
}

// Register installs a typed conversion function for T on r.
func Register[T any](r *Registry, fn func(text string) (T, error)) {
	if fn == nil {
		panic(fmt.Sprintf("convert: Register[%s] with nil func", reflect.TypeFor[T]()))
	}
	r.Register(reflect.TypeFor[T](), func(text string) (any, error) {
		v, err := fn(text)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Supports reports whether r knows how to convert into t.
func (r *Registry) Supports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := r.lookup(t); ok {
		return true
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Pointer:
		return r.Supports(t.Elem())
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Interface:
		return stringType.Implements(t)
	}
	return false
}

// Convert implements Converter.
func (r *Registry) Convert(text string, target reflect.Type) (any, error) {
	if target == nil {
		panic("convert: Convert with nil target type")
	}
	v, err := r.value(text, target)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, &Error{Text: text, Type: target, Err: err}
	}
	return v.Interface(), nil
}

func (r *Registry) lookup(t reflect.Type) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[t]
	return fn, ok
}

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringType          = reflect.TypeFor[string]()
)

func (r *Registry) value(text string, t reflect.Type) (reflect.Value, error) {
	if fn, ok := r.lookup(t); ok {
		v, err := fn(text)
		if err != nil {
			return reflect.Value{}, classify(err)
		}
		return fit(v, t), nil
	}

	if t.Kind() == reflect.Pointer {
		if t.Implements(textUnmarshalerType) {
			p := reflect.New(t.Elem())
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
				return reflect.Value{}, classify(err)
			}
			return p, nil
		}
		elem, err := r.value(text, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, classify(err)
		}
		return p.Elem(), nil
	}

	return kindValue(text, t)
}

// kindValue converts text by the underlying kind of t, so named types such
// as `type Level int` work without registration.
func kindValue(text string, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(text)
		return v, nil

	case reflect.Bool:
		b, err := parseBool(text)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)
		return v, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, classify(err)
		}
		v.SetInt(i)
		return v, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, classify(err)
		}
		v.SetUint(u)
		return v, nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, t.Bits())
		if err != nil {
			return reflect.Value{}, classify(err)
		}
		v.SetFloat(f)
		return v, nil

	case reflect.Interface:
		if stringType.Implements(t) {
			v.Set(reflect.ValueOf(text))
			return v, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%w %s", ErrUnsupported, t)
}

// fit adapts a registered function's result to t. A result that cannot be
// made into t means the registration itself is wrong.
func fit(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type() == t:
		return rv
	case rv.Type().AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t)
	}
	panic(fmt.Sprintf("convert: func registered for %s returned %s", t, rv.Type()))
}

// classify maps errors from parsers onto ErrSyntax or ErrRange while keeping
// the parser's message.
func classify(err error) error {
	if errors.Is(err, ErrSyntax) || errors.Is(err, ErrRange) || errors.Is(err, ErrUnsupported) {
		return err
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		if errors.Is(ne.Err, strconv.ErrRange) {
			return fmt.Errorf("%w: %w", ErrRange, err)
		}
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return fmt.Errorf("%w: %w", ErrSyntax, err)
}
