// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
)

var (
	// ErrNilComponent is returned by New for a nil component.
	ErrNilComponent = errors.New("cmdline: nil component")
	// ErrAlreadyRun is reported by Run when called more than once.
	ErrAlreadyRun = errors.New("cmdline: Run called more than once")
)

// Kind classifies command-line input errors.
type Kind int

const (
	CommandNameRequired Kind = iota + 1
	InvalidCommandName
	InvalidArgumentCount
	InvalidSwitchFormat
	InvalidArgumentName
	InvalidArgumentValue
)

func (k Kind) String() string {
	switch k {
	case CommandNameRequired:
		return "command name required"
	case InvalidCommandName:
		return "invalid command name"
	case InvalidArgumentCount:
		return "invalid number of arguments"
	case InvalidSwitchFormat:
		return "invalid switch format"
	case InvalidArgumentName:
		return "invalid argument name"
	case InvalidArgumentValue:
		return "invalid argument value"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// UsageError is returned by Process when the command line itself is wrong.
// It has already been reported to the UsageWriter.
type UsageError struct {
	Kind      Kind
	Command   string // operation name, when one was selected
	Parameter string // parameter or switch name, when relevant
	Token     string // offending token or value text, when relevant
	Err       error  // conversion error for InvalidArgumentValue
}

func (e *UsageError) Error() string {
	switch e.Kind {
	case CommandNameRequired:
		return e.Kind.String()
	case InvalidCommandName:
		return fmt.Sprintf("%s: %q", e.Kind, e.Token)
	case InvalidArgumentCount:
		return fmt.Sprintf("%s: %s", e.Kind, e.Command)
	case InvalidSwitchFormat:
		return fmt.Sprintf("%s: %s: %q", e.Kind, e.Command, e.Token)
	case InvalidArgumentName:
		return fmt.Sprintf("%s: %s: %q", e.Kind, e.Command, e.Parameter)
	case InvalidArgumentValue:
		return fmt.Sprintf("%s: %s: %s=%q: %v", e.Kind, e.Command, e.Parameter, e.Token, e.Err)
	}
	return e.Kind.String()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// InvocationError is returned by Process when the operation itself failed.
// It has already been reported to the UsageWriter.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Exit codes returned by Run and ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps a Process result to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}

// rootCause strips joined-error wrappers that hold a single error.
func rootCause(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() []error })
		if !ok {
			return err
		}
		errs := u.Unwrap()
		if len(errs) != 1 || errs[0] == nil {
			return err
		}
		err = errs[0]
	}
}
