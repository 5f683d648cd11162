// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"context"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yeetrun/cmdline/pkg/describe"
)

// slot holds the value bound to one parameter during a session.
type slot struct {
	value     reflect.Value
	satisfied bool
}

// session is the state of a single Process call.
type session struct {
	d      *Driver
	log    *log.Logger
	args   []string
	next   int
	method *describe.Method
	params []*describe.Parameter
	slots  []slot
	// positional is the index of the parameter the next positional token
	// binds to. Switches never move it.
	positional int
}

func newSession(d *Driver, args []string) *session {
	return &session{
		d:    d,
		log:  d.log.With("session", uuid.NewString()),
		args: args,
	}
}

func (s *session) hasArgs() bool { return s.next < len(s.args) }

func (s *session) dequeue() string {
	a := s.args[s.next]
	s.next++
	return a
}

func (s *session) run(ctx context.Context) error {
	s.log.Debug("processing", "args", s.args)
	if !s.hasArgs() {
		return s.commandNameRequired()
	}
	name := s.dequeue()
	if strings.TrimSpace(name) == "" {
		return s.commandNameRequired()
	}
	m, ok := s.d.component.Method(name)
	if !ok {
		s.log.Debug("unknown command", "name", name)
		s.d.usage.InvalidCommandName(name)
		return &UsageError{Kind: InvalidCommandName, Token: name}
	}
	s.selectMethod(m)

	if len(s.params) == 0 && s.hasArgs() {
		return s.invalidArgumentCount()
	}
	for s.hasArgs() {
		if err := s.bindNext(); err != nil {
			return err
		}
	}
	for i, sl := range s.slots {
		if !sl.satisfied {
			s.log.Debug("missing argument", "param", s.params[i].Name())
			return s.invalidArgumentCount()
		}
	}
	return s.invoke(ctx)
}

func (s *session) selectMethod(m *describe.Method) {
	s.method = m
	s.params = m.Parameters()
	s.slots = make([]slot, len(s.params))
	for i, p := range s.params {
		if !p.IsOptional() {
			s.slots[i] = slot{value: reflect.Zero(p.Type())}
			continue
		}
		s.slots[i] = slot{value: s.defaultValue(p), satisfied: true}
	}
	s.log.Debug("command selected", "command", m.Name(), "params", len(s.params))
}

// defaultValue returns a value for an omitted optional parameter that this
// session owns. The descriptor's own default is never handed to an
// operation, so pointer, slice and map defaults cannot leak between calls.
func (s *session) defaultValue(p *describe.Parameter) reflect.Value {
	if p.IsVariadic() {
		return reflect.MakeSlice(p.Type(), 0, 0)
	}
	v, err := s.d.conv.Convert(p.DefaultText(), p.Type())
	if err != nil {
		// The descriptor was built with a different converter.
		s.log.Debug("default conversion failed", "param", p.Name(), "err", err)
		v = p.DefaultValue()
	}
	if v == nil {
		return reflect.Zero(p.Type())
	}
	return reflect.ValueOf(v)
}

// bindNext consumes one token, and the token after it when a switch needs
// a separate value.
func (s *session) bindNext() error {
	token := s.dequeue()

	var (
		p   *describe.Parameter
		raw string
	)
	if sw, ok := ParseSwitch(token); ok {
		p, ok = s.method.Parameter(sw.Name)
		if !ok {
			s.d.usage.InvalidArgumentName(s.method, sw.Name)
			return &UsageError{Kind: InvalidArgumentName, Command: s.method.Name(), Parameter: sw.Name, Token: token}
		}
		raw = sw.Value
	} else {
		p = s.nextPositional()
		if p == nil {
			s.d.usage.InvalidSwitchFormat(token)
			return &UsageError{Kind: InvalidSwitchFormat, Command: s.method.Name(), Token: token}
		}
		raw = token
	}

	if raw == "" {
		if p.IsBoolean() {
			s.commit(p, reflect.ValueOf(true))
			return nil
		}
		if !s.hasArgs() {
			s.log.Debug("missing value", "param", p.Name())
			return s.invalidArgumentCount()
		}
		raw = s.dequeue()
	}

	v, err := s.d.conv.Convert(raw, p.ElemType())
	if err != nil {
		s.d.usage.InvalidArgumentValue(p, raw)
		return &UsageError{Kind: InvalidArgumentValue, Command: s.method.Name(), Parameter: p.Name(), Token: raw, Err: err}
	}
	rv := reflect.ValueOf(v)
	if v == nil {
		rv = reflect.Zero(p.ElemType())
	}
	s.commit(p, rv)
	return nil
}

// nextPositional returns the parameter for the next positional token. Once
// every position is used, a trailing variadic parameter takes the rest.
func (s *session) nextPositional() *describe.Parameter {
	if s.positional < len(s.params) {
		p := s.params[s.positional]
		s.positional++
		return p
	}
	if last := s.params[len(s.params)-1]; last.IsVariadic() {
		return last
	}
	return nil
}

func (s *session) commit(p *describe.Parameter, v reflect.Value) {
	sl := &s.slots[p.Index()]
	if p.IsVariadic() {
		sl.value = reflect.Append(sl.value, v)
	} else {
		sl.value = v
	}
	sl.satisfied = true
	s.log.Debug("bound", "param", p.Name(), "value", v.Interface())
}

func (s *session) invoke(ctx context.Context) error {
	values := make([]any, len(s.slots))
	for i, sl := range s.slots {
		values[i] = sl.value.Interface()
	}
	s.log.Debug("invoking", "command", s.method.Name())
	if err := s.method.Invoke(ctx, s.d.recv, values); err != nil {
		cause := rootCause(err)
		s.log.Debug("command failed", "command", s.method.Name(), "err", cause)
		s.d.usage.InvocationFailed(s.method, cause)
		return &InvocationError{Command: s.method.Name(), Err: cause}
	}
	s.log.Debug("command succeeded", "command", s.method.Name())
	return nil
}

func (s *session) commandNameRequired() error {
	s.d.usage.CommandNameRequired()
	return &UsageError{Kind: CommandNameRequired}
}

func (s *session) invalidArgumentCount() error {
	s.d.usage.InvalidArgumentCount(s.method)
	return &UsageError{Kind: InvalidArgumentCount, Command: s.method.Name()}
}
