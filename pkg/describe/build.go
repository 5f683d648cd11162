// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/yeetrun/cmdline/pkg/convert"
)

// Option configures how a component is described.
type Option func(*options)

type options struct {
	conv           convert.Converter
	strict         bool
	docs           *Docs
	description    string
	hasDescription bool
}

func newOptions(opts []Option) *options {
	o := &options{conv: convert.Default}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConverter sets the converter used for default tags. The default is
// convert.Default.
func WithConverter(c convert.Converter) Option {
	return func(o *options) {
		if c != nil {
			o.conv = c
		}
	}
}

// StrictSlices rejects slice fields that are not marked variadic. Without
// it such a field is an ordinary parameter of slice type, which only binds
// if the converter knows the slice type.
func StrictSlices() Option {
	return func(o *options) { o.strict = true }
}

// WithDocs supplies component and method documentation, replacing anything
// the component's CommandDocs method reports.
func WithDocs(d Docs) Option {
	return func(o *options) { o.docs = &d }
}

// WithDescription sets the component description.
func WithDescription(s string) Option {
	return func(o *options) {
		o.description = s
		o.hasDescription = true
	}
}

func build(name string, typ reflect.Type, description string, specs []MethodSpec, o *options) (*Component, error) {
	c := &Component{
		name:        name,
		description: description,
		typ:         typ,
	}
	if o.hasDescription {
		c.description = o.description
	}
	for _, s := range specs {
		if strings.TrimSpace(s.name) == "" {
			return nil, fmt.Errorf("describe: %s: operation with empty name", name)
		}
		if s.call == nil {
			return nil, fmt.Errorf("describe: %s: operation %s has no function", name, s.name)
		}
		m := &Method{
			name:        s.name,
			short:       strings.TrimSpace(s.short),
			description: s.help,
			component:   c,
			argType:     s.argType,
			recvType:    s.recvType,
			call:        s.call,
		}
		for _, prev := range c.methods {
			if label, ok := collision(prev.name, prev.short, m.name, m.short); ok {
				return nil, &DuplicateOperationError{Component: name, Name: label, First: prev.name, Second: m.name}
			}
		}
		if err := describeParams(m, o); err != nil {
			return nil, err
		}
		c.methods = append(c.methods, m)
	}
	return c, nil
}

type supporter interface {
	Supports(reflect.Type) bool
}

func describeParams(m *Method, o *options) error {
	if m.argType == nil {
		return nil
	}
	st := m.argType
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return &SignatureError{Method: m.name, Type: m.argType}
	}

	var fields []reflect.StructField
	for i := range st.NumField() {
		f := st.Field(i)
		if !f.IsExported() || f.Tag.Get("name") == "-" {
			continue
		}
		fields = append(fields, f)
	}

	for i, f := range fields {
		p := &Parameter{
			name:        f.Tag.Get("name"),
			short:       strings.TrimSpace(f.Tag.Get("short")),
			description: f.Tag.Get("help"),
			index:       len(m.params),
			field:       f.Index[0],
			typ:         f.Type,
			method:      m,
		}
		if p.name == "" {
			p.name = strings.ToLower(f.Name)
		}
		unsupported := func(reason string) error {
			return &UnsupportedParameterError{Method: m.name, Parameter: p.name, Type: f.Type, Reason: reason}
		}

		variadic := false
		if v := f.Tag.Get("variadic"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return unsupported(fmt.Sprintf("bad variadic tag %q", v))
			}
			variadic = b
		}
		defText, hasDefault := f.Tag.Lookup("default")

		isSlice := f.Type.Kind() == reflect.Slice
		elem := f.Type
		if variadic && isSlice {
			elem = f.Type.Elem()
		}
		supported := true
		if s, ok := o.conv.(supporter); ok {
			supported = s.Supports(elem)
		}

		switch {
		case variadic:
			if !isSlice {
				return unsupported("variadic parameter must be a slice")
			}
			if i != len(fields)-1 {
				return unsupported("variadic parameter must be the last parameter")
			}
			if hasDefault {
				return unsupported("variadic parameter cannot have a default")
			}
			p.variadic = true
			p.optional = true
			p.def = reflect.MakeSlice(f.Type, 0, 0).Interface()
		case isSlice && !supported && o.strict:
			return unsupported("slice parameter must be marked variadic")
		}
		// An unmarked slice may still gain a converter later.
		if !supported && !(isSlice && !variadic) {
			return unsupported("no conversion from text")
		}

		if hasDefault {
			v, err := o.conv.Convert(defText, f.Type)
			if err != nil {
				return &DefaultValueError{Method: m.name, Parameter: p.name, Value: defText, Err: err}
			}
			p.optional = true
			p.def = v
			p.defText = defText
		}

		for _, prev := range m.params {
			if label, ok := collision(prev.name, prev.short, p.name, p.short); ok {
				return &DuplicateParameterError{Method: m.name, Name: label, First: prev.name, Second: p.name}
			}
		}
		m.params = append(m.params, p)
	}
	return nil
}
