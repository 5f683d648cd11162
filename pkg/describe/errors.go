// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilType is returned when Reflect is given a nil type.
var ErrNilType = errors.New("describe: nil type")

// DuplicateOperationError is returned when two operations of one component
// answer to the same name or short name.
type DuplicateOperationError struct {
	Component string
	Name      string // the name both operations resolve to
	First     string // operation declared first
	Second    string // operation that collided with it
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("describe: %s: operations %s and %s both answer to %q", e.Component, e.First, e.Second, e.Name)
}

// DuplicateParameterError is returned when two parameters of one operation
// answer to the same name or short name.
type DuplicateParameterError struct {
	Method string
	Name   string
	First  string
	Second string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("describe: %s: parameters %s and %s both answer to %q", e.Method, e.First, e.Second, e.Name)
}

// UnsupportedParameterError is returned for a parameter field that cannot
// be bound from the command line.
type UnsupportedParameterError struct {
	Method    string
	Parameter string
	Type      reflect.Type
	Reason    string
}

func (e *UnsupportedParameterError) Error() string {
	return fmt.Sprintf("describe: %s: parameter %s (%s): %s", e.Method, e.Parameter, e.Type, e.Reason)
}

// DefaultValueError is returned when a parameter's default tag cannot be
// converted to the parameter's type.
type DefaultValueError struct {
	Method    string
	Parameter string
	Value     string
	Err       error
}

func (e *DefaultValueError) Error() string {
	return fmt.Sprintf("describe: %s: bad default %q for parameter %s: %v", e.Method, e.Value, e.Parameter, e.Err)
}

func (e *DefaultValueError) Unwrap() error {
	return e.Err
}

// SignatureError is returned when an explicitly registered operation takes
// an argument that is not a struct.
type SignatureError struct {
	Method string
	Type   reflect.Type
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("describe: %s: argument type %s is not a struct or pointer to struct", e.Method, e.Type)
}

// PanicError is returned by Method.Invoke when the operation panics.
type PanicError struct {
	Method string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Method, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
